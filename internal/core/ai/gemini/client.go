package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const maxLoggedBody = 512

// Client Gemini generateContent REST client
type Client struct {
	client  *resty.Client
	url     string
	apiKey  string
	model   string
	timeout time.Duration
}

// Part text part of a content block
type Part struct {
	Text string `json:"text"`
}

// Content ordered list of parts
type Content struct {
	Parts []Part `json:"parts"`
}

// Request generateContent request body
type Request struct {
	Contents []Content `json:"contents"`
}

// Candidate one generated candidate
type Candidate struct {
	Content Content `json:"content"`
}

// Response generateContent response body
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// NewClient creates a client for cfg. The resty client is safe for concurrent use.
func NewClient(cfg config.GeminiConfig) *Client {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{
		client:  client,
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Generate sends prompt once and returns candidates[0].content.parts[0].text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, prompt)
	common.LogAICall(c.model, time.Since(start), err, common.RequestIDFrom(ctx))
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", common.ErrAIDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := Request{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}

	common.LogDebug("Sending request to Gemini",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		Post(c.url)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", common.ErrAITimeout.Wrap(fmt.Errorf("no response within %s", c.timeout))
		}
		return "", common.ErrAITransport.Wrap(c.redact(err))
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogDebug("Gemini returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("response", truncate(resp.String(), maxLoggedBody)),
		)
		return "", common.ErrAIBadStatus.Wrap(fmt.Errorf("status %d", resp.StatusCode()))
	}

	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", common.ErrAIEmptyResponse.Wrap(fmt.Errorf("failed to parse response: %w", err))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", common.ErrAIEmptyResponse.Wrap(errors.New("no candidates in response"))
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", common.ErrAIEmptyResponse.Wrap(errors.New("empty text in first candidate"))
	}

	return text, nil
}

// GetModel returns the configured model name
func (c *Client) GetModel() string {
	return c.model
}

// GetTimeout returns the per-request wait bound
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// Close closes idle connections
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

// redact drops the request URL, which carries the key as a query parameter,
// from transport errors.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	if c.apiKey != "" && strings.Contains(err.Error(), c.apiKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "***"))
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

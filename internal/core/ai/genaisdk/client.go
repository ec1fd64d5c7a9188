// Package genaisdk is the Gemini provider built on the official Go SDK,
// selected with GEMINI_TRANSPORT=sdk.
package genaisdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client Gemini SDK client
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
}

// NewClient creates an SDK client for cfg.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, common.ErrAIDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	return &Client{
		client:    client,
		model:     model,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}, nil
}

// Generate sends prompt once and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = classify(ctx, err)
		common.LogAICall(c.modelName, time.Since(start), err, common.RequestIDFrom(ctx))
		return "", err
	}

	text, err := responseText(resp)
	common.LogAICall(c.modelName, time.Since(start), err, common.RequestIDFrom(ctx))
	return text, err
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return common.ErrAITimeout.Wrap(err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return common.ErrAIBadStatus.Wrap(fmt.Errorf("status %d: %w", apiErr.Code, err))
	}
	return common.ErrAITransport.Wrap(err)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", common.ErrAIEmptyResponse.Wrap(errors.New("no candidates in response"))
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", common.ErrAIEmptyResponse.Wrap(errors.New("no parts in first candidate"))
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok || text == "" {
		return "", common.ErrAIEmptyResponse.Wrap(errors.New("first part is not text"))
	}
	return string(text), nil
}

// GetModel returns the configured model name
func (c *Client) GetModel() string {
	return c.modelName
}

// GetTimeout returns the per-request wait bound
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// Close closes the SDK client
func (c *Client) Close() error {
	return c.client.Close()
}

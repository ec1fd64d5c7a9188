package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(url, key string, timeout time.Duration) *Client {
	return NewClient(config.GeminiConfig{
		APIKey:  key,
		URL:     url,
		Model:   "gemini-pro",
		Timeout: timeout,
	})
}

func TestClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, Request{Contents: []Content{{Parts: []Part{{Text: "recommend plans"}}}}}, body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[{\"name\":\"x\"}]"}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/v1beta/models/gemini-pro:generateContent", "test-key", 2*time.Second)
	defer client.Close()

	text, err := client.Generate(context.Background(), "recommend plans")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"x"}]`, text)
}

func TestClient_Generate_MissingKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", time.Second)

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAIDisabled))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_Generate_ErrorStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key", time.Second)

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAIBadStatus))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries")
}

func TestClient_Generate_MissingText(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		`not json at all`,
	}
	for _, b := range bodies {
		body := b
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := newTestClient(server.URL, "test-key", time.Second)
		_, err := client.Generate(context.Background(), "prompt")
		server.Close()

		require.Error(t, err, "body %s", body)
		assert.True(t, errors.Is(err, common.ErrAIEmptyResponse), "body %s", body)
	}
}

func TestClient_Generate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key", 50*time.Millisecond)

	start := time.Now()
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAITimeout))
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Generate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url, "test-key", time.Second)

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAITransport))
}

func TestClient_TransportErrorHidesKey(t *testing.T) {
	const key = "SECRET-KEY-123"

	core, logs := observer.New(zap.DebugLevel)
	prev := common.Logger
	common.Logger = zap.New(core)
	t.Cleanup(func() { common.Logger = prev })

	client := newTestClient("http://127.0.0.1:1/v1beta/models/gemini-pro:generateContent", key, time.Second)

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrAITransport))
	assert.NotContains(t, err.Error(), key)

	entries := logs.All()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		for k, v := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), key, "field %s of %q", k, entry.Message)
		}
	}
}

func TestClient_Redact(t *testing.T) {
	client := newTestClient("http://example.invalid", "abc123", time.Second)

	urlErr := &url.Error{Op: "Post", URL: "http://example.invalid?key=abc123", Err: errors.New("dial tcp: refused")}
	assert.Equal(t, "Post request: dial tcp: refused", client.redact(urlErr).Error())

	plain := errors.New("bad url http://example.invalid?key=abc123")
	redacted := client.redact(plain)
	assert.False(t, strings.Contains(redacted.Error(), "abc123"))
	assert.Contains(t, redacted.Error(), "key=***")
}

func TestClient_Accessors(t *testing.T) {
	client := newTestClient("http://example.invalid", "k", 30*time.Second)
	assert.Equal(t, "gemini-pro", client.GetModel())
	assert.Equal(t, 30*time.Second, client.GetTimeout())
	assert.NoError(t, client.Close())
}

package provider

import (
	"context"
	"fmt"
	"time"

	"medinest-api/internal/core/ai/gemini"
	"medinest-api/internal/core/ai/genaisdk"
	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"
)

// Provider sends one prompt to a generation backend and returns its raw text.
//
// Implementations make a single attempt bounded by GetTimeout and report every
// failure as an error carrying one of the common AI error codes.
type Provider interface {
	// Generate returns the generated text for prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// GetModel returns the model name in use
	GetModel() string

	// GetTimeout returns the per-request wait bound
	GetTimeout() time.Duration

	// Close releases idle connections
	Close() error
}

// New builds the provider selected by cfg.Gemini.Transport.
// It returns common.ErrAIDisabled when no credential is configured.
func New(ctx context.Context, cfg *config.Config) (Provider, error) {
	if !cfg.Gemini.Enabled() {
		return nil, common.ErrAIDisabled
	}

	switch cfg.Gemini.Transport {
	case config.TransportSDK:
		client, err := genaisdk.NewClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.TransportREST, "":
		return gemini.NewClient(cfg.Gemini), nil
	default:
		return nil, fmt.Errorf("unknown gemini transport %q", cfg.Gemini.Transport)
	}
}

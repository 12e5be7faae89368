// Package llm builds the text model used for drafting campaign copy.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"email-campaign/config"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
)

var defaultModels = map[string]string{
	ProviderGoogleAI: "gemini-2.0-flash",
	ProviderOpenAI:   "gpt-4o-mini",
	ProviderOllama:   "llama3",
}

// DefaultModel returns the model name used when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// NewModel creates a langchaingo model for the configured provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using the googleai provider")
		}
		client, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create googleai client: %w", err)
		}
		return client, nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required when using the openai provider")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		client, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return client, nil

	case ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		client, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: googleai, openai, ollama)", cfg.Provider)
	}
}

package llm

import (
	"context"
	"strings"
	"time"
)

// Request is a single completion request.
type Request struct {
	// System is the system instruction; empty means none.
	System string
	Prompt string
	// Temperature is the sampling temperature.
	Temperature float32
	// MaxTokens caps the output length; zero leaves the provider default.
	MaxTokens int
	// JSON asks the provider for a JSON response mode when it supports one.
	JSON bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete sends one completion request and returns the raw text output
	Complete(ctx context.Context, req Request) (string, error)
	// Provider returns the provider backing this client
	Provider() Provider
	// Model returns the model name requests are sent to
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration. A missing
// credential is reported as a KindConfig *Error before any network call.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	provider := config.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, missingKeyError(provider)
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, &Error{
			Kind:     KindConfig,
			Provider: provider,
			Message:  "unsupported LLM provider: " + string(provider),
		}
	}
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

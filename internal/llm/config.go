// Package llm provides the language-model client abstraction and the
// normalization of model output into JSON.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI chat completions API
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default model names per provider.
const (
	DefaultOpenAIModel = "chatgpt-4o-latest"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 90 * time.Second

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the default configuration (OpenAI)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    DefaultOpenAIModel,
		Timeout:  DefaultTimeout,
	}
}

// ParseProvider validates a provider name. Matching is case-insensitive.
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderOpenAI, ProviderGemini:
		return p, nil
	case "":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported LLM provider %q (want openai or gemini)", name)
	}
}

// DisplayName returns the human-readable provider name used in error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Gemini"
	default:
		return string(p)
	}
}

// APIKeyEnv returns the environment variable holding the provider credential.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// GetModel returns the configured model, or the provider default when unset.
func (c *Config) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}

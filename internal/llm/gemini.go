package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, missingKeyError(ProviderGemini)
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &Error{
			Kind:     KindConfig,
			Provider: ProviderGemini,
			Message:  fmt.Sprintf("failed to create Gemini client: %v", err),
			Cause:    err,
		}
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete generates content with the request's system instruction and sampling settings.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := withTimeout(ctx, c.config.Timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.Model())
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", ClassifyError(ProviderGemini, err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &Error{Kind: KindUpstream, Provider: ProviderGemini, Message: err.Error()}
	}
	return text, nil
}

// Provider returns ProviderGemini.
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.config.GetModel()
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

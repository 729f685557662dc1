package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Client for the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client. An empty BaseURL keeps the SDK default.
func NewOpenAIClient(config *Config, apiKey string) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Complete sends a system and a user message and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := withTimeout(ctx, c.config.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.Model(),
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", ClassifyError(ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindUpstream, Provider: ProviderOpenAI, Message: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// Provider returns ProviderOpenAI.
func (c *OpenAIClient) Provider() Provider {
	return ProviderOpenAI
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.config.GetModel()
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (c *OpenAIClient) Close() error {
	return nil
}

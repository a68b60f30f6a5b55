package providers

import (
	"context"
	"fmt"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient asks questions against the OpenAI chat completion API.
type OpenAIClient struct {
	apiKey string
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI provider client.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	c := &OpenAIClient{apiKey: apiKey, model: model}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

func (c *OpenAIClient) Name() models.Provider {
	return models.ProviderOpenAI
}

func (c *OpenAIClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *OpenAIClient) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/go-resty/resty/v2"
)

// AnthropicClient asks questions against the Anthropic messages API.
type AnthropicClient struct {
	apiKey string
	client *resty.Client
	model  string
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicClient creates a new Anthropic provider client.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey: apiKey,
		client: resty.New().SetTimeout(60 * time.Second),
		model:  "claude-3-5-haiku-latest",
	}
}

func (c *AnthropicClient) Name() models.Provider {
	return models.ProviderAnthropic
}

func (c *AnthropicClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *AnthropicClient) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("Content-Type", "application/json").
		SetBody(anthropicRequest{
			Model:     c.model,
			MaxTokens: 1024,
			Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		}).
		Post("https://api.anthropic.com/v1/messages")

	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("anthropic API returned status %d", resp.StatusCode())
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content")
	}

	return text.String(), nil
}

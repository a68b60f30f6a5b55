package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/go-resty/resty/v2"
)

// PerplexityClient asks questions against Perplexity's OpenAI-compatible
// chat completion API. Perplexity answers carry [n] citation markers that the
// extraction layer strips before ranking brands.
type PerplexityClient struct {
	apiKey string
	client *resty.Client
	model  string
}

type perplexityRequest struct {
	Model    string              `json:"model"`
	Messages []perplexityMessage `json:"messages"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Choices []struct {
		Message perplexityMessage `json:"message"`
	} `json:"choices"`
}

// NewPerplexityClient creates a new Perplexity provider client.
func NewPerplexityClient(apiKey string) *PerplexityClient {
	return &PerplexityClient{
		apiKey: apiKey,
		client: resty.New().SetTimeout(60 * time.Second),
		model:  "sonar",
	}
}

func (c *PerplexityClient) Name() models.Provider {
	return models.ProviderPerplexity
}

func (c *PerplexityClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *PerplexityClient) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(perplexityRequest{
			Model:    c.model,
			Messages: []perplexityMessage{{Role: "user", Content: prompt}},
		}).
		Post("https://api.perplexity.ai/chat/completions")

	if err != nil {
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("perplexity API returned status %d", resp.StatusCode())
	}

	var parsed perplexityResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("perplexity returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ClovaClient asks questions against Naver's CLOVA Studio chat completion
// API, the dominant Korean-language answer engine.
type ClovaClient struct {
	apiKey string
	client *resty.Client
	model  string
}

type clovaRequest struct {
	Messages  []clovaMessage `json:"messages"`
	MaxTokens int            `json:"maxTokens"`
}

type clovaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type clovaResponse struct {
	Result struct {
		Message clovaMessage `json:"message"`
	} `json:"result"`
}

// NewClovaClient creates a new CLOVA Studio provider client.
func NewClovaClient(apiKey string) *ClovaClient {
	return &ClovaClient{
		apiKey: apiKey,
		client: resty.New().SetTimeout(60 * time.Second),
		model:  "HCX-003",
	}
}

func (c *ClovaClient) Name() models.Provider {
	return models.ProviderClova
}

func (c *ClovaClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *ClovaClient) Ask(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("https://clovastudio.stream.ntruss.com/testapp/v1/chat-completions/%s", c.model)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("X-NCP-CLOVASTUDIO-REQUEST-ID", uuid.NewString()).
		SetHeader("Content-Type", "application/json").
		SetBody(clovaRequest{
			Messages:  []clovaMessage{{Role: "user", Content: prompt}},
			MaxTokens: 1024,
		}).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("clova request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("clova API returned status %d", resp.StatusCode())
	}

	var parsed clovaResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}

	if parsed.Result.Message.Content == "" {
		return "", fmt.Errorf("clova returned empty content")
	}

	return parsed.Result.Message.Content, nil
}

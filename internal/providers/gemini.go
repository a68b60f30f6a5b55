package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/go-resty/resty/v2"
)

// GeminiClient asks questions against the Google Gemini generateContent API.
type GeminiClient struct {
	apiKey string
	client *resty.Client
	model  string
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a new Gemini provider client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		client: resty.New().SetTimeout(60 * time.Second),
		model:  "gemini-1.5-flash",
	}
}

func (c *GeminiClient) Name() models.Provider {
	return models.ProviderGemini
}

func (c *GeminiClient) IsEnabled() bool {
	return c.apiKey != ""
}

func (c *GeminiClient) Ask(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", c.model)

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(geminiRequest{
			Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		}).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gemini API returned status %d", resp.StatusCode())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

package providers

import (
	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/models"
)

// NewRegistry builds the provider dispatch table. Adding a provider is a new
// map entry, not a new branch in the scan loop.
func NewRegistry(cfg *config.Config) map[models.Provider]Client {
	return map[models.Provider]Client{
		models.ProviderOpenAI:     NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		models.ProviderAnthropic:  NewAnthropicClient(cfg.AnthropicAPIKey),
		models.ProviderGemini:     NewGeminiClient(cfg.GeminiAPIKey),
		models.ProviderPerplexity: NewPerplexityClient(cfg.PerplexityAPIKey),
		models.ProviderClova:      NewClovaClient(cfg.ClovaAPIKey),
	}
}

// Enabled filters the registry down to clients with usable credentials.
func Enabled(registry map[models.Provider]Client) []Client {
	var clients []Client
	for _, provider := range []models.Provider{
		models.ProviderOpenAI,
		models.ProviderAnthropic,
		models.ProviderGemini,
		models.ProviderPerplexity,
		models.ProviderClova,
	} {
		if client, ok := registry[provider]; ok && client.IsEnabled() {
			clients = append(clients, client)
		}
	}
	return clients
}

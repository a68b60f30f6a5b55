package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/brandlens/visibility-bot/internal/providers"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Brand Visibility Bot - Provider Connectivity Test")
	fmt.Println("====================================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &config.Config{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		PerplexityAPIKey: os.Getenv("PERPLEXITY_API_KEY"),
		ClovaAPIKey:      os.Getenv("CLOVA_API_KEY"),
	}

	prompt := "무선 이어폰 추천해줘"
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing AI Providers...")
	fmt.Println(strings.Repeat("-", 40))

	registry := providers.NewRegistry(cfg)
	order := []models.Provider{
		models.ProviderOpenAI,
		models.ProviderAnthropic,
		models.ProviderGemini,
		models.ProviderPerplexity,
		models.ProviderClova,
	}
	for _, name := range order {
		testProvider(ctx, registry[name], prompt)
	}

	fmt.Println("\n✅ Provider connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Run full bot with: make run")
	fmt.Println("   • Deploy to your preferred platform")
}

func testProvider(ctx context.Context, client providers.Client, prompt string) {
	fmt.Printf("🔸 Testing %s... ", client.Name())

	if !client.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return
	}

	answer, err := client.Ask(ctx, prompt)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d chars)\n", len(answer))

	// Show a sample of the answer
	sample := answer
	if len(sample) > 120 {
		sample = sample[:120] + "..."
	}
	fmt.Printf("   📝 Sample: %q\n", strings.ReplaceAll(sample, "\n", " "))
}

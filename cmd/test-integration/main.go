package main

import (
	"fmt"
	"log"
	"os"

	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/expansion"
	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/brandlens/visibility-bot/internal/scanning"
	"github.com/joho/godotenv"
)

// SimpleTestStorage for local testing
type SimpleTestStorage struct{}

func (s *SimpleTestStorage) Store(filename string, data []byte) error {
	fmt.Printf("📁 Would store %d bytes to %s\n", len(data), filename)
	return nil
}
func (s *SimpleTestStorage) Retrieve(filename string) ([]byte, error) {
	return nil, fmt.Errorf("no stored data in test mode")
}
func (s *SimpleTestStorage) List(prefix string) ([]string, error) { return nil, nil }
func (s *SimpleTestStorage) Delete(filename string) error         { return nil }

// SimpleTestNotification for local testing
type SimpleTestNotification struct{}

func (s *SimpleTestNotification) SendReport(report *models.Report) error {
	fmt.Println("\n🎉 REPORT GENERATED!")
	fmt.Printf("🏷️  Brand: %s\n", report.BrandName)
	fmt.Printf("📊 Answers analyzed: %d\n", report.TotalAnswers)
	fmt.Printf("🗣️  Share of Voice: %.1f%%\n", report.ShareOfVoice)

	for _, score := range report.Scores {
		fmt.Printf("🎯 %s: %d/100\n", score.Keyword, score.OverallScore)
	}

	return nil
}

func (s *SimpleTestNotification) SendAlert(alert *models.Alert) error {
	fmt.Printf("🚨 ALERT: %s\n", alert.Message)
	return nil
}

func main() {
	fmt.Println("🧪 Brand Visibility Bot - Local Integration Test")
	fmt.Println("================================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Create basic config for testing
	cfg := &config.Config{
		ScanSchedule:           "daily",
		BrandName:              getEnvDefault("BRAND_NAME", "사운드코어"),
		Industry:               getEnvDefault("BRAND_INDUSTRY", "오디오"),
		Keywords:               []string{"무선 이어폰"},
		Competitors:            []string{"에어팟", "버즈"},
		ExpansionLevel:         models.ExpansionMinimal,
		TrendPeriod:            models.TrendPeriod7d,
		ScoreDropThreshold:     20,
		MentionFrequencyWeight: 0.40,
		PositionWeight:         0.30,
		SentimentWeight:        0.15,
		ProminenceWeight:       0.15,
		Port:                   "8080",
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:            os.Getenv("OPENAI_MODEL"),
		AnthropicAPIKey:        os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		PerplexityAPIKey:       os.Getenv("PERPLEXITY_API_KEY"),
		ClovaAPIKey:            os.Getenv("CLOVA_API_KEY"),
	}

	// Template expansion works offline, show it first
	fmt.Println("\n🔍 Template query expansion:")
	expander := expansion.NewTemplateExpander()
	queries := expander.Expand(models.QueryExpansionInput{
		OriginalQuery:  "무선 이어폰",
		BrandName:      cfg.BrandName,
		Industry:       cfg.Industry,
		Keywords:       cfg.Keywords,
		Competitors:    cfg.Competitors,
		ExpansionLevel: models.ExpansionStandard,
	})
	for i, q := range queries {
		fmt.Printf("   %d. [%s] %s (relevance %.2f)\n", i+1, q.Type, q.Query, q.RelevanceScore)
	}

	// Create test services
	storage := &SimpleTestStorage{}
	notifications := &SimpleTestNotification{}

	// Create scanning service
	service := scanning.NewService(cfg, storage, notifications)

	fmt.Println("\n🔍 Running full scan cycle...")
	fmt.Println("⏱️  This will query real provider APIs and may take a few minutes...")

	if err := service.RunScan(); err != nil {
		fmt.Printf("\n❌ Scan failed: %v\n", err)
		fmt.Println("💡 Configure at least one provider API key in .env to run the full cycle")
		return
	}

	fmt.Println("\n📊 Final metrics:")
	fmt.Println(service.GetMetrics())

	fmt.Println("\n✅ Integration test completed!")
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

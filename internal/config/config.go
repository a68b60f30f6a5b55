package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/brandlens/visibility-bot/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ScanSchedule string // "daily" or "weekly"
	TimeZone     string

	// Azure Storage configuration
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Provider API keys
	OpenAIAPIKey     string
	OpenAIModel      string
	AnthropicAPIKey  string
	GeminiAPIKey     string
	PerplexityAPIKey string
	ClovaAPIKey      string

	// Brand profile
	BrandName   string
	Industry    string
	Keywords    []string
	Competitors []string

	// Query expansion
	ExpansionLevel     models.ExpansionLevel
	EnableLLMExpansion bool

	// Scoring
	TrendPeriod            models.TrendPeriod
	MentionFrequencyWeight float64
	PositionWeight         float64
	SentimentWeight        float64
	ProminenceWeight       float64

	// Alerting
	EnableQuickChecks  bool
	ScoreDropThreshold int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Debug:        getBoolEnv("DEBUG", false),
		ScanSchedule: getEnv("SCAN_SCHEDULE", "weekly"),
		TimeZone:     getEnv("TIMEZONE", "UTC"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "visibility"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		PerplexityAPIKey: getEnv("PERPLEXITY_API_KEY", ""),
		ClovaAPIKey:      getEnv("CLOVA_API_KEY", ""),

		BrandName:   getEnv("BRAND_NAME", ""),
		Industry:    getEnv("BRAND_INDUSTRY", ""),
		Keywords:    getSliceEnv("KEYWORDS", nil),
		Competitors: getSliceEnv("COMPETITORS", nil),

		ExpansionLevel:     models.ExpansionLevel(getEnv("EXPANSION_LEVEL", string(models.ExpansionStandard))),
		EnableLLMExpansion: getBoolEnv("ENABLE_LLM_EXPANSION", true),

		TrendPeriod:            models.TrendPeriod(getEnv("TREND_PERIOD", string(models.TrendPeriod7d))),
		MentionFrequencyWeight: getFloatEnv("WEIGHT_MENTION_FREQUENCY", 0.40),
		PositionWeight:         getFloatEnv("WEIGHT_POSITION", 0.30),
		SentimentWeight:        getFloatEnv("WEIGHT_SENTIMENT", 0.15),
		ProminenceWeight:       getFloatEnv("WEIGHT_PROMINENCE", 0.15),

		EnableQuickChecks:  getBoolEnv("ENABLE_QUICK_CHECKS", true),
		ScoreDropThreshold: getIntEnv("SCORE_DROP_THRESHOLD", 20),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ScanSchedule != "daily" && c.ScanSchedule != "weekly" {
		return fmt.Errorf("SCAN_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.BrandName == "" {
		return fmt.Errorf("BRAND_NAME is required")
	}

	if len(c.Keywords) == 0 {
		return fmt.Errorf("KEYWORDS must list at least one keyword to track")
	}

	switch c.ExpansionLevel {
	case models.ExpansionMinimal, models.ExpansionStandard, models.ExpansionComprehensive:
	default:
		return fmt.Errorf("EXPANSION_LEVEL must be 'minimal', 'standard' or 'comprehensive'")
	}

	switch c.TrendPeriod {
	case models.TrendPeriod7d, models.TrendPeriod30d, models.TrendPeriod90d:
	default:
		return fmt.Errorf("TREND_PERIOD must be '7d', '30d' or '90d'")
	}

	weightSum := c.MentionFrequencyWeight + c.PositionWeight + c.SentimentWeight + c.ProminenceWeight
	if math.Abs(weightSum-1.0) > 0.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", weightSum)
	}

	if c.TeamsWebhookURL == "" && c.NotificationEmail == "" {
		return fmt.Errorf("at least one notification method must be configured (TEAMS_WEBHOOK_URL or NOTIFICATION_EMAIL)")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

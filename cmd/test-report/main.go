package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/brandlens/visibility-bot/internal/scoring"
)

// TestStorage implements simple file-based storage for testing
type TestStorage struct{}

func (t *TestStorage) Store(filename string, data []byte) error {
	dir := "test_output"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), data, 0644)
}

func (t *TestStorage) Retrieve(filename string) ([]byte, error) {
	return os.ReadFile(filepath.Join("test_output", filename))
}

func (t *TestStorage) List(prefix string) ([]string, error) {
	return []string{}, nil
}

func (t *TestStorage) Delete(filename string) error {
	return os.Remove(filepath.Join("test_output", filename))
}

func printReport(report *models.Report) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 BRAND VISIBILITY REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("🏷️  Brand: %s\n", report.BrandName)
	fmt.Printf("📅 Period: %s\n", report.Period)
	fmt.Printf("🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Answers analyzed: %d\n", report.TotalAnswers)
	fmt.Printf("🗣️  Share of Voice: %.1f%%\n", report.ShareOfVoice)

	fmt.Println("\n🎯 Keyword Scores:")
	for i, score := range report.Scores {
		fmt.Printf("\n   %d. %s: %d/100\n", i+1, score.Keyword, score.OverallScore)
		fmt.Printf("      • Mention frequency: %d\n", score.Components.MentionFrequency)
		fmt.Printf("      • Position:          %d\n", score.Components.PositionScore)
		fmt.Printf("      • Sentiment:         %d\n", score.Components.SentimentScore)
		fmt.Printf("      • Prominence:        %d\n", score.Components.ProminenceScore)

		if score.Trend != nil && score.Trend.PreviousScore != nil {
			emoji := "➡️"
			switch score.Trend.Direction {
			case "up":
				emoji = "📈"
			case "down":
				emoji = "📉"
			}
			fmt.Printf("      %s Trend: %s %+d%% (previous %d)\n",
				emoji, score.Trend.Direction, score.Trend.ChangePercent, *score.Trend.PreviousScore)
		}

		for _, exposure := range score.Breakdown {
			fmt.Printf("      🤖 %s: %d (%d mentions)\n", exposure.Provider, exposure.Score, exposure.MentionCount)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
}

func saveReportToFile(report *models.Report) error {
	dir := "test_output"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	timestamp := report.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("visibility_report_%s.json", timestamp))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Printf("\n💾 Report saved to: %s\n", filename)
	return nil
}

func main() {
	fmt.Println("🤖 Brand Visibility Bot - Test Report Generator")
	fmt.Println("===============================================")

	calculator := scoring.NewCalculator(scoring.DefaultWeights)

	// Sample provider answers for two keywords
	earbudsPoints := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Position: 1, Sentiment: models.SentimentPositive, Prominence: models.ProminenceFeatured},
		{Provider: models.ProviderGemini, Mentioned: true, Position: 3, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceSecondary},
		{Provider: models.ProviderPerplexity, Mentioned: true, Position: 2, Sentiment: models.SentimentPositive, Prominence: models.ProminencePrimary},
		{Provider: models.ProviderClova, Mentioned: false},
	}

	headphonesPoints := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceMentioned},
		{Provider: models.ProviderGemini, Mentioned: false},
		{Provider: models.ProviderPerplexity, Mentioned: false},
		{Provider: models.ProviderClova, Mentioned: true, Position: 5, Sentiment: models.SentimentNegative, Prominence: models.ProminenceSecondary},
	}

	// Score history to exercise trend calculation
	history := []models.ScoreHistoryPoint{
		{Date: time.Now().AddDate(0, 0, -21), Score: 38},
		{Date: time.Now().AddDate(0, 0, -10), Score: 45},
	}

	earbudsScore := calculator.Calculate("무선 이어폰", earbudsPoints)
	earbudsTrend := scoring.CalculateTrend(earbudsScore.OverallScore, history, models.TrendPeriod7d)
	earbudsScore.Trend = &earbudsTrend

	headphonesScore := calculator.Calculate("노이즈캔슬링 헤드폰", headphonesPoints)
	headphonesTrend := scoring.CalculateTrend(headphonesScore.OverallScore, nil, models.TrendPeriod7d)
	headphonesScore.Trend = &headphonesTrend

	report := &models.Report{
		GeneratedAt:  time.Now(),
		Period:       "weekly",
		BrandName:    "사운드코어",
		TotalAnswers: len(earbudsPoints) + len(headphonesPoints),
		Scores:       []models.ExposureScore{earbudsScore, headphonesScore},
		ShareOfVoice: 57.1,
		Summary: map[string]interface{}{
			"scores": map[string]int{
				"무선 이어폰":      earbudsScore.OverallScore,
				"노이즈캔슬링 헤드폰": headphonesScore.OverallScore,
			},
		},
	}

	printReport(report)

	if err := saveReportToFile(report); err != nil {
		fmt.Printf("\n⚠️  Warning: Could not save to file: %v\n", err)
	}

	// Exercise the storage shim too
	storage := &TestStorage{}
	if data, err := json.Marshal(report.Scores); err == nil {
		if err := storage.Store("sample_scores.json", data); err != nil {
			fmt.Printf("⚠️  Warning: Could not store scores: %v\n", err)
		}
	}

	fmt.Println("\n✅ Test report generation completed!")
}

package scoring

import (
	"testing"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculator_EmptyResults(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	score := calc.Calculate("무선 이어폰", nil)

	assert.Equal(t, 0, score.OverallScore)
	assert.Equal(t, 0, score.Components.MentionFrequency)
	assert.Equal(t, 0, score.Components.PositionScore)
	assert.Equal(t, 50, score.Components.SentimentScore, "missing sentiment must not read as negative")
	assert.Equal(t, 0, score.Components.ProminenceScore)
	assert.Empty(t, score.Breakdown)
}

func TestCalculator_MentionFrequency(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	// 3 mentioned out of 5 total
	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true},
		{Provider: models.ProviderAnthropic, Mentioned: true},
		{Provider: models.ProviderGemini, Mentioned: true},
		{Provider: models.ProviderPerplexity, Mentioned: false},
		{Provider: models.ProviderClova, Mentioned: false},
	}

	score := calc.Calculate("keyword", results)
	assert.Equal(t, 60, score.Components.MentionFrequency)
}

func TestCalculator_PositionTable(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	tests := []struct {
		name     string
		position int
		expected int
	}{
		{"First place", 1, 100},
		{"Second place", 2, 80},
		{"Third place", 3, 60},
		{"Fourth place", 4, 40},
		{"Fifth place", 5, 20},
		{"Beyond table clamps to floor", 7, 20},
		{"Invalid rank scores zero", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []models.ExposureDataPoint{
				{Provider: models.ProviderOpenAI, Mentioned: true, Position: tt.position},
			}
			score := calc.Calculate("keyword", results)
			assert.Equal(t, tt.expected, score.Components.PositionScore)
		})
	}
}

func TestCalculator_PositionAbsenceIsAGap(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	// Mentioned everywhere but never ranked: position score is 0, not neutral.
	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true},
		{Provider: models.ProviderAnthropic, Mentioned: true},
	}

	score := calc.Calculate("keyword", results)
	assert.Equal(t, 0, score.Components.PositionScore)
}

func TestCalculator_SentimentScore(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	tests := []struct {
		name     string
		results  []models.ExposureDataPoint
		expected int
	}{
		{
			name: "Mixed sentiment averages",
			results: []models.ExposureDataPoint{
				{Provider: models.ProviderOpenAI, Mentioned: true, Sentiment: models.SentimentPositive},
				{Provider: models.ProviderAnthropic, Mentioned: true, Sentiment: models.SentimentNegative},
			},
			expected: 50,
		},
		{
			name: "All positive",
			results: []models.ExposureDataPoint{
				{Provider: models.ProviderOpenAI, Mentioned: true, Sentiment: models.SentimentPositive},
			},
			expected: 100,
		},
		{
			name: "No sentiment data defaults to neutral",
			results: []models.ExposureDataPoint{
				{Provider: models.ProviderOpenAI, Mentioned: true},
			},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calc.Calculate("keyword", tt.results)
			assert.Equal(t, tt.expected, score.Components.SentimentScore)
		})
	}
}

func TestCalculator_ProminenceScore(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Prominence: models.ProminenceFeatured},
		{Provider: models.ProviderAnthropic, Mentioned: true, Prominence: models.ProminenceMentioned},
	}
	score := calc.Calculate("keyword", results)
	assert.Equal(t, 65, score.Components.ProminenceScore)

	// No prominence observed anywhere defaults to the "mentioned" level.
	none := []models.ExposureDataPoint{{Provider: models.ProviderOpenAI, Mentioned: true}}
	score = calc.Calculate("keyword", none)
	assert.Equal(t, 30, score.Components.ProminenceScore)
}

func TestCalculator_OverallWeighting(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	// Single mention at rank 1 with positive sentiment and featured prominence:
	// every component is at its maximum, so the overall score must be 100.
	results := []models.ExposureDataPoint{
		{
			Provider:   models.ProviderOpenAI,
			Mentioned:  true,
			Position:   1,
			Sentiment:  models.SentimentPositive,
			Prominence: models.ProminenceFeatured,
		},
	}

	score := calc.Calculate("keyword", results)
	assert.Equal(t, 100, score.OverallScore)

	// 2 of 4 mentioned (50), one at rank 2 (80), neutral sentiment (50),
	// secondary prominence (50): 50*0.4 + 80*0.3 + 50*0.15 + 50*0.15 = 59.
	mixed := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Position: 2, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceSecondary},
		{Provider: models.ProviderAnthropic, Mentioned: true, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceSecondary},
		{Provider: models.ProviderGemini, Mentioned: false},
		{Provider: models.ProviderPerplexity, Mentioned: false},
	}
	score = calc.Calculate("keyword", mixed)
	assert.Equal(t, 59, score.OverallScore)
}

func TestCalculator_ScoreBounds(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	inputs := [][]models.ExposureDataPoint{
		nil,
		{{Provider: models.ProviderOpenAI, Mentioned: false}},
		{{Provider: models.ProviderOpenAI, Mentioned: true, Position: -3, Sentiment: models.SentimentNegative}},
		{
			{Provider: models.ProviderOpenAI, Mentioned: true, Position: 1, Sentiment: models.SentimentPositive, Prominence: models.ProminenceFeatured},
			{Provider: models.ProviderClova, Mentioned: true, Position: 9, Sentiment: models.SentimentNegative, Prominence: models.ProminenceMentioned},
		},
	}

	for _, results := range inputs {
		score := calc.Calculate("keyword", results)
		assert.GreaterOrEqual(t, score.OverallScore, 0)
		assert.LessOrEqual(t, score.OverallScore, 100)
		for _, component := range []int{
			score.Components.MentionFrequency,
			score.Components.PositionScore,
			score.Components.SentimentScore,
			score.Components.ProminenceScore,
		} {
			assert.GreaterOrEqual(t, component, 0)
			assert.LessOrEqual(t, component, 100)
		}
	}
}

func TestCalculator_ProviderBreakdown(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Position: 1, Sentiment: models.SentimentPositive, Prominence: models.ProminenceFeatured},
		{Provider: models.ProviderOpenAI, Mentioned: true, Position: 3, Sentiment: models.SentimentPositive, Prominence: models.ProminencePrimary},
		{Provider: models.ProviderGemini, Mentioned: true, Position: 2, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceSecondary},
		{Provider: models.ProviderGemini, Mentioned: false},
		{Provider: models.ProviderClova, Mentioned: false},
	}

	score := calc.Calculate("keyword", results)

	assert.Len(t, score.Breakdown, 3)

	// Sorted by score descending: openai 100, gemini 50, clova 0.
	assert.Equal(t, models.ProviderOpenAI, score.Breakdown[0].Provider)
	assert.Equal(t, 100, score.Breakdown[0].Score)
	assert.Equal(t, 2, score.Breakdown[0].MentionCount)
	if assert.NotNil(t, score.Breakdown[0].AvgPosition) {
		assert.InDelta(t, 2.0, *score.Breakdown[0].AvgPosition, 0.001)
	}
	assert.Equal(t, models.SentimentPositive, score.Breakdown[0].Sentiment)

	assert.Equal(t, models.ProviderGemini, score.Breakdown[1].Provider)
	assert.Equal(t, 50, score.Breakdown[1].Score)

	assert.Equal(t, models.ProviderClova, score.Breakdown[2].Provider)
	assert.Equal(t, 0, score.Breakdown[2].Score)
	assert.Nil(t, score.Breakdown[2].AvgPosition)
	assert.Empty(t, score.Breakdown[2].Sentiment, "no mentions means no dominant sentiment")
	assert.Empty(t, score.Breakdown[2].Prominence)
}

func TestCalculator_MajorityVoteTieBreaks(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	// One positive, one negative: the tie resolves toward negative so a split
	// never hides risk. Prominence ties resolve toward the stronger placement.
	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Sentiment: models.SentimentPositive, Prominence: models.ProminenceMentioned},
		{Provider: models.ProviderOpenAI, Mentioned: true, Sentiment: models.SentimentNegative, Prominence: models.ProminenceFeatured},
	}

	score := calc.Calculate("keyword", results)

	assert.Len(t, score.Breakdown, 1)
	assert.Equal(t, models.SentimentNegative, score.Breakdown[0].Sentiment)
	assert.Equal(t, models.ProminenceFeatured, score.Breakdown[0].Prominence)
}

func TestCalculator_Deterministic(t *testing.T) {
	calc := NewCalculator(DefaultWeights)

	results := []models.ExposureDataPoint{
		{Provider: models.ProviderOpenAI, Mentioned: true, Position: 1, Sentiment: models.SentimentPositive, Prominence: models.ProminenceFeatured},
		{Provider: models.ProviderAnthropic, Mentioned: true, Position: 4, Sentiment: models.SentimentNeutral, Prominence: models.ProminenceSecondary},
		{Provider: models.ProviderGemini, Mentioned: false},
	}

	first := calc.Calculate("keyword", results)
	second := calc.Calculate("keyword", results)
	assert.Equal(t, first, second)
}

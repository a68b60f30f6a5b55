package scanning

import (
	"strings"
	"testing"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_DataPoint_NoMention(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", []string{"에어팟"})

	point := analyzer.DataPoint(models.ProviderOpenAI, "무선 이어폰으로는 에어팟과 버즈가 유명합니다.")

	assert.False(t, point.Mentioned)
	assert.Equal(t, 0, point.Position)
	assert.Empty(t, point.Sentiment)
	assert.Empty(t, point.Prominence)
}

func TestAnalyzer_DataPoint_RankedMention(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", []string{"에어팟"})

	answer := "추천 무선 이어폰 목록입니다.\n" +
		"1. 사운드코어 - 최고의 가성비로 인기가 많습니다\n" +
		"2. 에어팟 - 애플 생태계와 잘 맞습니다\n" +
		"3. 버즈 - 무난한 선택입니다"

	point := analyzer.DataPoint(models.ProviderOpenAI, answer)

	assert.True(t, point.Mentioned)
	assert.Equal(t, 1, point.Position)
	assert.Equal(t, models.SentimentPositive, point.Sentiment)
	assert.Equal(t, models.ProminenceFeatured, point.Prominence, "leading the ranked list reads as featured")
}

func TestAnalyzer_DataPoint_SecondPlace(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", nil)

	answer := "1) 에어팟이 가장 유명합니다\n2) 사운드코어도 많이 선택합니다\n3) 버즈"

	point := analyzer.DataPoint(models.ProviderOpenAI, answer)

	assert.True(t, point.Mentioned)
	assert.Equal(t, 2, point.Position)
}

func TestAnalyzer_UnrankedMentionHasNoPosition(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", nil)

	point := analyzer.DataPoint(models.ProviderOpenAI, "사운드코어 제품도 고려해볼 만합니다.")

	assert.True(t, point.Mentioned)
	assert.Equal(t, 0, point.Position, "prose without a numbered list carries no rank")
}

func TestStripCitations(t *testing.T) {
	assert.Equal(t, "사운드코어는 좋은 선택입니다", stripCitations("사운드코어[1]는 좋은 선택입니다[2]"))
	assert.Equal(t, "no markers here", stripCitations("no markers here"))
}

func TestAnalyzer_PerplexityCitationsDoNotHideRank(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", nil)

	answer := "1. 사운드코어[1][3] - 추천 제품\n2. 에어팟[2]"
	point := analyzer.DataPoint(models.ProviderPerplexity, answer)

	assert.True(t, point.Mentioned)
	assert.Equal(t, 1, point.Position)
}

func TestAnalyzer_MentionSentiment(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", []string{"에어팟"})

	tests := []struct {
		name     string
		answer   string
		expected models.Sentiment
	}{
		{
			name:     "Positive mention",
			answer:   "사운드코어는 음질이 뛰어나고 추천할 만합니다.",
			expected: models.SentimentPositive,
		},
		{
			name:     "Negative mention",
			answer:   "사운드코어는 단점이 많고 통화 품질이 별로입니다.",
			expected: models.SentimentNegative,
		},
		{
			name:     "Neutral mention",
			answer:   "사운드코어라는 브랜드도 있습니다.",
			expected: models.SentimentNeutral,
		},
		{
			name:     "Competitor praise stays out of brand sentiment",
			answer:   "에어팟은 최고의 이어폰으로 추천합니다. 사운드코어라는 선택지도 있습니다.",
			expected: models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := analyzer.DataPoint(models.ProviderOpenAI, tt.answer)
			assert.True(t, point.Mentioned)
			assert.Equal(t, tt.expected, point.Sentiment)
		})
	}
}

func TestAnalyzer_ProminenceTiers(t *testing.T) {
	analyzer := NewAnalyzer("soundcore", nil)
	padding := strings.Repeat("other earbuds are also worth a look. ", 20)

	tests := []struct {
		name     string
		answer   string
		expected models.Prominence
	}{
		{
			name:     "Opening with repeats is featured",
			answer:   "soundcore leads this space. soundcore models cover every budget. " + padding,
			expected: models.ProminenceFeatured,
		},
		{
			name:     "Single early mention is primary",
			answer:   "soundcore is one option. " + padding,
			expected: models.ProminencePrimary,
		},
		{
			name:     "Mid-answer mention is secondary",
			answer:   padding[:len(padding)/2] + "soundcore fits here. " + padding,
			expected: models.ProminenceSecondary,
		},
		{
			name:     "Buried mention is a bare mention",
			answer:   padding + "finally there is soundcore.",
			expected: models.ProminenceMentioned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := analyzer.DataPoint(models.ProviderOpenAI, tt.answer)
			assert.True(t, point.Mentioned)
			assert.Equal(t, tt.expected, point.Prominence)
		})
	}
}

func TestAnalyzer_BrandNameVariants(t *testing.T) {
	analyzer := NewAnalyzer("Sound Core", nil)

	collapsed := analyzer.DataPoint(models.ProviderOpenAI, "SoundCore makes solid earbuds.")
	assert.True(t, collapsed.Mentioned, "collapsed spelling should still count as a mention")

	spaced := analyzer.DataPoint(models.ProviderOpenAI, "sound core makes solid earbuds.")
	assert.True(t, spaced.Mentioned)
}

func TestAnalyzer_MentionCounts(t *testing.T) {
	analyzer := NewAnalyzer("사운드코어", []string{"에어팟", "버즈"})

	brand, competitors := analyzer.MentionCounts(
		"사운드코어와 에어팟을 비교하면, 사운드코어가 저렴하고 버즈는 중간입니다.")

	assert.Equal(t, 2, brand)
	assert.Equal(t, 2, competitors)
}

func TestAnalyzer_MentionCounts_CompetitorSpellingVariants(t *testing.T) {
	analyzer := NewAnalyzer("Sound Core", []string{"Galaxy Buds"})

	brand, competitors := analyzer.MentionCounts(
		"SoundCore and sound core both beat GalaxyBuds, though galaxy buds are close.")

	assert.Equal(t, 2, brand)
	assert.Equal(t, 2, competitors, "collapsed competitor spellings count like brand ones")
}

package expansion

import (
	"context"
	"testing"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseQueries(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{
			name:     "Clean JSON object",
			content:  `{"queries": [{"query": "무선 이어폰 순위 알려줘", "type": "ranking", "intent": "순위 확인"}]}`,
			expected: 1,
		},
		{
			name:     "JSON wrapped in prose",
			content:  "다음은 생성된 질문입니다:\n{\"queries\": [{\"query\": \"q1\", \"type\": \"review\"}, {\"query\": \"q2\", \"type\": \"price\"}]}\n참고하세요.",
			expected: 2,
		},
		{
			name:     "No JSON at all",
			content:  "죄송합니다, 질문을 생성할 수 없습니다.",
			expected: 0,
		},
		{
			name:     "Malformed JSON",
			content:  `{"queries": [{"query": "q1"`,
			expected: 0,
		},
		{
			name:     "Missing queries field",
			content:  `{"results": ["q1", "q2"]}`,
			expected: 0,
		},
		{
			name:     "Blank queries are dropped",
			content:  `{"queries": [{"query": "  "}, {"query": "q2"}]}`,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries := parseQueries(tt.content, 8)
			assert.Len(t, queries, tt.expected)
		})
	}
}

func TestParseQueries_TruncatesAtCap(t *testing.T) {
	content := `{"queries": [
		{"query": "q1"}, {"query": "q2"}, {"query": "q3"},
		{"query": "q4"}, {"query": "q5"}, {"query": "q6"}
	]}`

	queries := parseQueries(content, 4)
	assert.Len(t, queries, 4)
}

func TestParseQueries_RelevanceDecay(t *testing.T) {
	content := `{"queries": [{"query": "q1"}, {"query": "q2"}, {"query": "q3"}]}`

	queries := parseQueries(content, 8)
	assert.Len(t, queries, 3)
	assert.InDelta(t, 1.0, queries[0].RelevanceScore, 0.001)
	assert.InDelta(t, 0.75, queries[1].RelevanceScore, 0.001)
	assert.InDelta(t, 0.5, queries[2].RelevanceScore, 0.001)

	single := parseQueries(`{"queries": [{"query": "only"}]}`, 8)
	assert.InDelta(t, 1.0, single[0].RelevanceScore, 0.001)
}

func TestQueryTypeFrom(t *testing.T) {
	tests := []struct {
		label    string
		expected models.QueryType
	}{
		{"ranking", models.QueryTypeRanking},
		{"Rank", models.QueryTypeRanking},
		{"intent", models.QueryTypeIntentVariation},
		{"comparison", models.QueryTypeComparison},
		{" vs ", models.QueryTypeComparison},
		{"비교", models.QueryTypeComparison},
		{"price", models.QueryTypePriceFocus},
		{"features", models.QueryTypeFeatureSpecific},
		{"something else entirely", models.QueryTypeIntentVariation},
		{"", models.QueryTypeIntentVariation},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, queryTypeFrom(tt.label), "label %q", tt.label)
	}
}

func TestLLMExpander_DisabledReturnsEmpty(t *testing.T) {
	expander := &LLMExpander{}
	assert.False(t, expander.IsEnabled())

	queries := expander.Expand(context.Background(), models.QueryExpansionInput{
		OriginalQuery: "무선 이어폰 추천",
		BrandName:     "사운드코어",
	})
	assert.Empty(t, queries)
}

func TestLLMExpander_FallbackToTemplates(t *testing.T) {
	expander := &LLMExpander{} // disabled, so LLM output is always empty
	fallback := NewTemplateExpander()

	input := models.QueryExpansionInput{
		OriginalQuery:  "무선 이어폰 추천",
		BrandName:      "사운드코어",
		Industry:       "음향기기",
		Keywords:       []string{"노이즈캔슬링"},
		Competitors:    []string{"에어팟"},
		ExpansionLevel: models.ExpansionStandard,
	}

	queries := expander.ExpandWithFallback(context.Background(), input, fallback)
	assert.NotEmpty(t, queries, "fallback must deliver whatever the template strategy can produce")
	assert.Equal(t, fallback.Expand(input), queries)
}

package expansion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const systemPrompt = `당신은 AEO(Answer Engine Optimization) 전문가입니다. ` +
	`사용자가 AI 챗봇에게 실제로 물어볼 법한 자연스러운 한국어 질문을 만들어냅니다. ` +
	`브랜드 노출을 다양한 각도에서 측정할 수 있도록 질문의 의도와 유형을 다양하게 구성하세요. ` +
	`반드시 JSON 형식으로만 답변하세요.`

// LLMExpander derives context-aware test queries by asking a language model.
// A zero-value expander is disabled and always returns an empty result, which
// the fallback path turns into template expansion.
type LLMExpander struct {
	client *openai.Client
	model  string
}

// NewLLMExpander creates an expander backed by a chat-completion endpoint.
// An empty API key yields a disabled expander.
func NewLLMExpander(apiKey, model string) *LLMExpander {
	if apiKey == "" {
		return &LLMExpander{}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMExpander{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// IsEnabled reports whether the expander has a usable client.
func (e *LLMExpander) IsEnabled() bool {
	return e.client != nil
}

// Expand asks the model for derived queries. Every failure mode (network,
// timeout, unparseable output, missing fields) degrades to an empty slice;
// expansion is a best-effort enrichment step, never a fatal path.
func (e *LLMExpander) Expand(ctx context.Context, input models.QueryExpansionInput) []models.DerivedQuery {
	if !e.IsEnabled() {
		return nil
	}

	level := input.ExpansionLevel
	if level == "" {
		level = models.ExpansionStandard
	}
	count := level.MaxQueries()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(input, count)},
		},
	})
	if err != nil {
		logrus.Errorf("LLM query expansion failed: %v", err)
		return nil
	}

	if len(resp.Choices) == 0 {
		logrus.Warn("LLM query expansion returned no choices")
		return nil
	}

	queries := parseQueries(resp.Choices[0].Message.Content, count)
	logrus.Infof("LLM expansion produced %d derived queries for '%s'", len(queries), input.OriginalQuery)
	return queries
}

// ExpandWithFallback runs LLM expansion and falls back to the supplied
// template expander when the model produced nothing. Output is non-empty
// whenever the template strategy itself can succeed.
func (e *LLMExpander) ExpandWithFallback(ctx context.Context, input models.QueryExpansionInput, fallback *TemplateExpander) []models.DerivedQuery {
	if queries := e.Expand(ctx, input); len(queries) > 0 {
		return queries
	}
	logrus.Info("Falling back to template-based query expansion")
	return fallback.Expand(input)
}

func buildUserPrompt(input models.QueryExpansionInput, count int) string {
	return fmt.Sprintf(`다음 정보를 바탕으로 AI 챗봇 테스트용 파생 질문 %d개를 생성해주세요.

원본 질문: %s
브랜드명: %s
업종: %s
핵심 키워드: %s
경쟁사: %s

각 질문은 서로 다른 각도에서 브랜드 노출을 측정해야 합니다.
관련성이 높은 질문부터 순서대로 나열하세요.

다음 JSON 형식으로만 답변하세요:
{"queries": [{"query": "질문 내용", "type": "질문 유형", "intent": "질문 의도"}]}`,
		count,
		input.OriginalQuery,
		input.BrandName,
		input.Industry,
		strings.Join(input.Keywords, ", "),
		strings.Join(input.Competitors, ", "))
}

type llmQueryList struct {
	Queries []llmQuery `json:"queries"`
}

type llmQuery struct {
	Query  string `json:"query"`
	Type   string `json:"type"`
	Intent string `json:"intent"`
}

// parseQueries extracts the first brace-delimited JSON object from the model
// output, tolerating surrounding prose, and maps it onto derived queries.
// Anything unparseable yields an empty result.
func parseQueries(content string, maxQueries int) []models.DerivedQuery {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		logrus.Warnf("LLM expansion output contained no JSON object: %.80s", content)
		return nil
	}

	var parsed llmQueryList
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		logrus.Warnf("Failed to parse LLM expansion output: %v", err)
		return nil
	}

	if len(parsed.Queries) == 0 {
		return nil
	}
	if len(parsed.Queries) > maxQueries {
		parsed.Queries = parsed.Queries[:maxQueries]
	}

	queries := make([]models.DerivedQuery, 0, len(parsed.Queries))
	for i, q := range parsed.Queries {
		if strings.TrimSpace(q.Query) == "" {
			continue
		}
		relevance := relevanceByPosition(i, len(parsed.Queries))
		queries = append(queries, models.DerivedQuery{
			Query:                          strings.TrimSpace(q.Query),
			Type:                           queryTypeFrom(q.Type),
			Intent:                         q.Intent,
			RelevanceScore:                 relevance,
			ExpectedBrandMentionLikelihood: likelihoodFor(relevance),
		})
	}
	return queries
}

// relevanceByPosition assumes the model listed queries in descending
// relevance order and decays linearly from 1.0 to 0.5 across the list. The
// ordering is an assumption about model behavior, not a guarantee.
func relevanceByPosition(index, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return 1.0 - 0.5*float64(index)/float64(total-1)
}

func likelihoodFor(relevance float64) models.Likelihood {
	switch {
	case relevance >= 0.8:
		return models.LikelihoodHigh
	case relevance >= 0.6:
		return models.LikelihoodMedium
	default:
		return models.LikelihoodLow
	}
}

// queryTypeSynonyms maps the model's free-text type labels onto the fixed
// category set.
var queryTypeSynonyms = map[string]models.QueryType{
	"intent":            models.QueryTypeIntentVariation,
	"intent_variation":  models.QueryTypeIntentVariation,
	"variation":         models.QueryTypeIntentVariation,
	"의도":                models.QueryTypeIntentVariation,
	"specificity":       models.QueryTypeSpecificity,
	"specific":          models.QueryTypeSpecificity,
	"구체화":               models.QueryTypeSpecificity,
	"price":             models.QueryTypePriceFocus,
	"price_focus":       models.QueryTypePriceFocus,
	"가격":                models.QueryTypePriceFocus,
	"alternative":       models.QueryTypeAlternative,
	"alternatives":      models.QueryTypeAlternative,
	"대안":                models.QueryTypeAlternative,
	"comparison":        models.QueryTypeComparison,
	"compare":           models.QueryTypeComparison,
	"vs":                models.QueryTypeComparison,
	"비교":                models.QueryTypeComparison,
	"review":            models.QueryTypeReview,
	"reviews":           models.QueryTypeReview,
	"후기":                models.QueryTypeReview,
	"ranking":           models.QueryTypeRanking,
	"rank":              models.QueryTypeRanking,
	"순위":                models.QueryTypeRanking,
	"feature":           models.QueryTypeFeatureSpecific,
	"features":          models.QueryTypeFeatureSpecific,
	"feature_specific":  models.QueryTypeFeatureSpecific,
	"기능":                models.QueryTypeFeatureSpecific,
}

// queryTypeFrom normalizes a free-text type label; unrecognized labels
// default to intent_variation.
func queryTypeFrom(label string) models.QueryType {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if t, ok := queryTypeSynonyms[normalized]; ok {
		return t
	}
	return models.QueryTypeIntentVariation
}

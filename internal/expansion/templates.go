package expansion

import (
	"strings"

	"github.com/brandlens/visibility-bot/internal/models"
)

// genericCompetitor fills the {competitor} placeholder when no competitor is
// configured.
const genericCompetitor = "경쟁사"

// categoryTemplate groups the patterns for one expansion category. Patterns
// may reference {query}, {brand}, {keyword} and {competitor}; a pattern whose
// placeholder cannot be filled from the input is skipped.
type categoryTemplate struct {
	queryType  models.QueryType
	baseScore  float64
	likelihood models.Likelihood
	intent     string
	patterns   []string
}

// categoryTemplates is the full template table in priority order: categories
// earlier in the list fill first when the level cap is tight.
var categoryTemplates = []categoryTemplate{
	{
		queryType:  models.QueryTypeRanking,
		baseScore:  0.95,
		likelihood: models.LikelihoodHigh,
		intent:     "순위형 질문으로 브랜드 노출 위치 확인",
		patterns: []string{
			"{query} 순위 TOP 5 알려줘",
			"요즘 가장 인기 있는 {query} 뭐야?",
			"{query} 베스트 추천 목록",
		},
	},
	{
		queryType:  models.QueryTypeComparison,
		baseScore:  0.90,
		likelihood: models.LikelihoodHigh,
		intent:     "경쟁사 대비 언급 여부 확인",
		patterns: []string{
			"{brand}랑 {competitor} 중에 뭐가 더 나아?",
			"{brand} vs {competitor} 비교해줘",
			"{query} 브랜드별 장단점 비교",
		},
	},
	{
		queryType:  models.QueryTypeIntentVariation,
		baseScore:  0.85,
		likelihood: models.LikelihoodMedium,
		intent:     "구매 의도를 바꾼 변형 질문",
		patterns: []string{
			"{query} 추천해줘",
			"{query} 어떤 게 좋아?",
			"{query} 살까 말까 고민 중이야",
		},
	},
	{
		queryType:  models.QueryTypeSpecificity,
		baseScore:  0.80,
		likelihood: models.LikelihoodMedium,
		intent:     "세부 조건을 붙인 구체화 질문",
		patterns: []string{
			"{keyword}에 좋은 {query} 추천",
			"초보자한테 맞는 {query} 뭐가 있어?",
			"{keyword} 용도로 쓸 {query} 알려줘",
		},
	},
	{
		queryType:  models.QueryTypePriceFocus,
		baseScore:  0.75,
		likelihood: models.LikelihoodMedium,
		intent:     "가격 관점에서의 노출 확인",
		patterns: []string{
			"가성비 좋은 {query} 추천해줘",
			"{query} 가격대별로 정리해줘",
			"10만원대 {query} 뭐가 괜찮아?",
		},
	},
	{
		queryType:  models.QueryTypeAlternative,
		baseScore:  0.70,
		likelihood: models.LikelihoodMedium,
		intent:     "대체재 질문에서의 브랜드 방어력 확인",
		patterns: []string{
			"{brand} 대신 쓸 만한 거 있어?",
			"{query} 대체할 만한 제품 추천",
			"{competitor} 말고 다른 {query} 없어?",
		},
	},
	{
		queryType:  models.QueryTypeReview,
		baseScore:  0.65,
		likelihood: models.LikelihoodLow,
		intent:     "후기 관점 질문에서의 언급 확인",
		patterns: []string{
			"{brand} 실제 써본 사람들 평가 어때?",
			"{query} 사용 후기 정리해줘",
			"{brand} 단점도 솔직하게 알려줘",
		},
	},
	{
		queryType:  models.QueryTypeFeatureSpecific,
		baseScore:  0.60,
		likelihood: models.LikelihoodLow,
		intent:     "특정 기능 기준 질문에서의 언급 확인",
		patterns: []string{
			"{keyword} 기능이 뛰어난 {query} 추천",
			"{query} 주요 기능 비교해줘",
			"{keyword} 잘 되는 제품 뭐야?",
		},
	},
}

// minimalCategories is the reduced category set used at the minimal level.
var minimalCategories = map[models.QueryType]bool{
	models.QueryTypeRanking:         true,
	models.QueryTypeComparison:      true,
	models.QueryTypeIntentVariation: true,
	models.QueryTypeSpecificity:     true,
}

// fillPattern substitutes placeholders from the input. The second return is
// false when a required placeholder has no value to fill it with.
func fillPattern(pattern string, input models.QueryExpansionInput) (string, bool) {
	filled := pattern

	if strings.Contains(filled, "{keyword}") {
		if len(input.Keywords) == 0 {
			return "", false
		}
		filled = strings.ReplaceAll(filled, "{keyword}", input.Keywords[0])
	}

	if strings.Contains(filled, "{competitor}") {
		competitor := genericCompetitor
		if len(input.Competitors) > 0 {
			competitor = input.Competitors[0]
		}
		filled = strings.ReplaceAll(filled, "{competitor}", competitor)
	}

	filled = strings.ReplaceAll(filled, "{query}", input.OriginalQuery)
	filled = strings.ReplaceAll(filled, "{brand}", input.BrandName)

	return filled, true
}

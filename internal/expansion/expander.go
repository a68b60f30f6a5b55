package expansion

import (
	"sort"
	"strings"

	"github.com/brandlens/visibility-bot/internal/models"
)

// relevanceBoost is added to a category's base score when the input carries
// data that makes the category more likely to surface the brand.
const relevanceBoost = 0.05

// TemplateExpander derives test queries by filling fixed Korean-language
// templates. It is deterministic and total: the same input always produces
// the same ordered list and no input can make it fail.
type TemplateExpander struct {
	templates []categoryTemplate
}

// NewTemplateExpander creates an expander over the standard template table.
func NewTemplateExpander() *TemplateExpander {
	return &TemplateExpander{templates: categoryTemplates}
}

// Expand generates derived queries for the input. The expansion level bounds
// both the category set and the output count (4/8/12); candidates fill
// category by category in priority order, so at low caps late categories may
// be excluded entirely. The output never contains the original query and is
// sorted by relevance descending.
func (e *TemplateExpander) Expand(input models.QueryExpansionInput) []models.DerivedQuery {
	level := input.ExpansionLevel
	if level == "" {
		level = models.ExpansionStandard
	}
	maxQueries := level.MaxQueries()

	seen := map[string]bool{
		strings.ToLower(input.OriginalQuery): true,
	}

	var queries []models.DerivedQuery
	for _, tmpl := range e.templates {
		if level == models.ExpansionMinimal && !minimalCategories[tmpl.queryType] {
			continue
		}
		if len(queries) >= maxQueries {
			break
		}

		relevance := e.relevanceFor(tmpl, input)

		for _, pattern := range tmpl.patterns {
			if len(queries) >= maxQueries {
				break
			}

			filled, ok := fillPattern(pattern, input)
			if !ok {
				continue
			}

			key := strings.ToLower(filled)
			if seen[key] {
				continue
			}
			seen[key] = true

			queries = append(queries, models.DerivedQuery{
				Query:                          filled,
				Type:                           tmpl.queryType,
				Intent:                         tmpl.intent,
				RelevanceScore:                 relevance,
				ExpectedBrandMentionLikelihood: tmpl.likelihood,
			})
		}
	}

	sort.SliceStable(queries, func(i, j int) bool {
		return queries[i].RelevanceScore > queries[j].RelevanceScore
	})

	return queries
}

// relevanceFor computes a category's relevance for this input: the fixed base
// plus a small boost when the input carries matching context, capped at 1.0.
func (e *TemplateExpander) relevanceFor(tmpl categoryTemplate, input models.QueryExpansionInput) float64 {
	score := tmpl.baseScore

	switch tmpl.queryType {
	case models.QueryTypeComparison:
		if len(input.Competitors) > 0 {
			score += relevanceBoost
		}
	case models.QueryTypeSpecificity, models.QueryTypeFeatureSpecific:
		if len(input.Keywords) > 0 {
			score += relevanceBoost
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

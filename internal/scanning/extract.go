package scanning

import (
	"regexp"
	"strings"

	"github.com/brandlens/visibility-bot/internal/models"
)

// positionExtractor finds the 1-based rank of a brand inside an answer, or 0
// when the answer carries no usable ranking.
type positionExtractor func(brand, answer string) int

// Analyzer turns raw provider answers into exposure data points: mention
// detection, list position, mention-local sentiment and prominence. Provider
// quirks are handled through the extractor dispatch table, so new providers
// are additive.
type Analyzer struct {
	brand              string
	brandVariants      []string
	competitorVariants [][]string
	positionExtractors map[models.Provider]positionExtractor
}

// NewAnalyzer creates an analyzer for one brand and its competitor set.
func NewAnalyzer(brand string, competitors []string) *Analyzer {
	competitorVariants := make([][]string, 0, len(competitors))
	for _, competitor := range competitors {
		competitorVariants = append(competitorVariants, nameVariants(competitor))
	}
	return &Analyzer{
		brand:              brand,
		brandVariants:      nameVariants(brand),
		competitorVariants: competitorVariants,
		positionExtractors: map[models.Provider]positionExtractor{
			// Perplexity answers carry [n] citation markers that confuse
			// line matching.
			models.ProviderPerplexity: func(brand, answer string) int {
				return listRank(brand, stripCitations(answer))
			},
		},
	}
}

// nameVariants returns the lowercase spellings a brand realistically appears
// under: as written and with spaces collapsed.
func nameVariants(brand string) []string {
	lower := strings.ToLower(strings.TrimSpace(brand))
	variants := []string{lower}
	if collapsed := strings.ReplaceAll(lower, " ", ""); collapsed != lower {
		variants = append(variants, collapsed)
	}
	return variants
}

// DataPoint builds the exposure signal for one provider answer.
func (a *Analyzer) DataPoint(provider models.Provider, answer string) models.ExposureDataPoint {
	point := models.ExposureDataPoint{Provider: provider}

	lowered := strings.ToLower(answer)
	firstIdx := a.firstMention(lowered)
	if firstIdx < 0 {
		return point
	}
	point.Mentioned = true

	extract, ok := a.positionExtractors[provider]
	if !ok {
		extract = listRank
	}
	point.Position = extract(a.brandVariants[0], answer)

	point.Sentiment = a.mentionSentiment(answer)
	point.Prominence = a.prominence(lowered, firstIdx, point.Position)

	return point
}

// MentionCounts counts brand and competitor mentions in an answer, the raw
// material for share-of-voice. Both sides get the same spelling-variant
// treatment. The spaced and collapsed spellings of a name cannot overlap in
// text, so summing their counts is safe.
func (a *Analyzer) MentionCounts(answer string) (brand, competitors int) {
	lowered := strings.ToLower(answer)
	brand = countVariants(lowered, a.brandVariants)
	for _, variants := range a.competitorVariants {
		competitors += countVariants(lowered, variants)
	}
	return brand, competitors
}

func (a *Analyzer) firstMention(lowered string) int {
	first := -1
	for _, variant := range a.brandVariants {
		if idx := strings.Index(lowered, variant); idx >= 0 && (first == -1 || idx < first) {
			first = idx
		}
	}
	return first
}

func (a *Analyzer) mentionCount(lowered string) int {
	return countVariants(lowered, a.brandVariants)
}

func countVariants(lowered string, variants []string) int {
	count := 0
	for _, variant := range variants {
		count += strings.Count(lowered, variant)
	}
	return count
}

var citationMarker = regexp.MustCompile(`\[\d+\]`)

func stripCitations(answer string) string {
	return citationMarker.ReplaceAllString(answer, "")
}

var listItem = regexp.MustCompile(`^\s*(\d+)[.)]\s`)

// listRank scans the answer for numbered list lines and returns the number
// of the first line mentioning the brand. Unranked mentions return 0.
func listRank(brand, answer string) int {
	for _, line := range strings.Split(answer, "\n") {
		match := listItem.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if strings.Contains(strings.ToLower(line), brand) {
			rank := 0
			for _, ch := range match[1] {
				rank = rank*10 + int(ch-'0')
			}
			return rank
		}
	}
	return 0
}

// Sentiment word lists for mention-local analysis. Korean answers dominate,
// with an English fallback for providers that reply in English.
var positiveWords = []string{
	"추천", "최고", "좋아", "좋은", "훌륭", "인기", "만족", "뛰어나",
	"great", "excellent", "best", "recommended", "popular", "reliable",
}

var negativeWords = []string{
	"단점", "불만", "아쉬", "별로", "나쁘", "문제", "떨어지", "실망",
	"poor", "bad", "issue", "problem", "disappointing", "unreliable",
}

// mentionSentiment scores only the sentences that mention the brand, so a
// glowing answer about a competitor doesn't color the brand's own sentiment.
func (a *Analyzer) mentionSentiment(answer string) models.Sentiment {
	segment := strings.ToLower(a.mentionSegment(answer))

	positiveCount := 0
	negativeCount := 0
	for _, word := range positiveWords {
		positiveCount += strings.Count(segment, word)
	}
	for _, word := range negativeWords {
		negativeCount += strings.Count(segment, word)
	}

	if positiveCount > negativeCount {
		return models.SentimentPositive
	} else if negativeCount > positiveCount {
		return models.SentimentNegative
	}

	return models.SentimentNeutral
}

var sentenceBoundary = regexp.MustCompile(`[.!?\n]+`)

func (a *Analyzer) mentionSegment(answer string) string {
	var segments []string
	for _, sentence := range sentenceBoundary.Split(answer, -1) {
		if a.firstMention(strings.ToLower(sentence)) >= 0 {
			segments = append(segments, sentence)
		}
	}
	if len(segments) == 0 {
		return answer
	}
	return strings.Join(segments, " ")
}

// prominence grades how central the mention is: leading the ranked list or
// opening the answer with repeats reads as featured, an early mention as
// primary, a mid-answer mention as secondary, anything buried at the end as
// a bare mention.
func (a *Analyzer) prominence(lowered string, firstIdx, position int) models.Prominence {
	if len(lowered) == 0 {
		return models.ProminenceMentioned
	}

	ratio := float64(firstIdx) / float64(len(lowered))
	mentions := a.mentionCount(lowered)

	switch {
	case position == 1 || (ratio <= 0.1 && mentions >= 2):
		return models.ProminenceFeatured
	case ratio <= 0.25:
		return models.ProminencePrimary
	case ratio <= 0.75:
		return models.ProminenceSecondary
	default:
		return models.ProminenceMentioned
	}
}

package scoring

import (
	"math"
	"sort"

	"github.com/brandlens/visibility-bot/internal/models"
)

// Weights controls how the four component sub-scores combine into the overall
// exposure score. The four fields must sum to 1.0.
type Weights struct {
	MentionFrequency float64
	Position         float64
	Sentiment        float64
	Prominence       float64
}

// DefaultWeights is the standard weighting scheme.
var DefaultWeights = Weights{
	MentionFrequency: 0.40,
	Position:         0.30,
	Sentiment:        0.15,
	Prominence:       0.15,
}

// Calculator computes exposure scores from observed data points. The weight
// and value tables are owned by the calculator so alternate schemes can be
// tested without touching package state.
type Calculator struct {
	weights          Weights
	sentimentValues  map[models.Sentiment]float64
	prominenceValues map[models.Prominence]float64
}

// NewCalculator creates a calculator with the given weights and the standard
// sentiment/prominence value tables.
func NewCalculator(weights Weights) *Calculator {
	return &Calculator{
		weights: weights,
		sentimentValues: map[models.Sentiment]float64{
			models.SentimentPositive: 100,
			models.SentimentNeutral:  50,
			models.SentimentNegative: 0,
		},
		prominenceValues: map[models.Prominence]float64{
			models.ProminenceFeatured:  100,
			models.ProminencePrimary:   80,
			models.ProminenceSecondary: 50,
			models.ProminenceMentioned: 30,
		},
	}
}

// Calculate combines per-provider mention, position, sentiment and prominence
// signals into a weighted 0-100 score for one keyword. It is a pure function
// of its inputs: an empty result set yields a zero score with a neutral
// sentiment default and an empty breakdown.
func (c *Calculator) Calculate(keyword string, results []models.ExposureDataPoint) models.ExposureScore {
	if len(results) == 0 {
		return models.ExposureScore{
			Keyword: keyword,
			Components: models.ScoreComponents{
				// Absence of sentiment data must not read as negative.
				SentimentScore: 50,
			},
			Breakdown: []models.ProviderExposure{},
		}
	}

	mentionFrequency := c.mentionFrequency(results)
	positionScore := c.positionScore(results)
	sentimentScore := c.sentimentScore(results)
	prominenceScore := c.prominenceScore(results)

	// The overall score is weighted over the unrounded components and rounded
	// exactly once; the components are rounded independently for display.
	overall := mentionFrequency*c.weights.MentionFrequency +
		positionScore*c.weights.Position +
		sentimentScore*c.weights.Sentiment +
		prominenceScore*c.weights.Prominence

	return models.ExposureScore{
		Keyword:      keyword,
		OverallScore: int(math.Round(overall)),
		Components: models.ScoreComponents{
			MentionFrequency: int(math.Round(mentionFrequency)),
			PositionScore:    int(math.Round(positionScore)),
			SentimentScore:   int(math.Round(sentimentScore)),
			ProminenceScore:  int(math.Round(prominenceScore)),
		},
		Breakdown: c.providerBreakdown(results),
	}
}

func (c *Calculator) mentionFrequency(results []models.ExposureDataPoint) float64 {
	mentioned := 0
	for _, r := range results {
		if r.Mentioned {
			mentioned++
		}
	}
	return float64(mentioned) / float64(len(results)) * 100
}

// positionValue maps a 1-based rank onto 0-100. Rank 1 scores 100 and each
// further rank costs 20 points down to a floor of 20 for rank 5 and beyond.
func positionValue(position int) float64 {
	if position < 1 {
		return 0
	}
	return math.Max(20, 100-float64(position-1)*20)
}

// positionScore averages the position values of mentioned results that carry
// a position. No positioned mentions at all is a real visibility gap and
// scores 0 rather than a neutral default.
func (c *Calculator) positionScore(results []models.ExposureDataPoint) float64 {
	var sum float64
	count := 0
	for _, r := range results {
		if r.Mentioned && r.Position != 0 {
			sum += positionValue(r.Position)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func (c *Calculator) sentimentScore(results []models.ExposureDataPoint) float64 {
	var sum float64
	count := 0
	for _, r := range results {
		if r.Mentioned && r.Sentiment != "" {
			sum += c.sentimentValues[r.Sentiment]
			count++
		}
	}
	if count == 0 {
		return 50 // neutral default
	}
	return sum / float64(count)
}

func (c *Calculator) prominenceScore(results []models.ExposureDataPoint) float64 {
	var sum float64
	count := 0
	for _, r := range results {
		if r.Prominence != "" {
			sum += c.prominenceValues[r.Prominence]
			count++
		}
	}
	if count == 0 {
		return 30 // "mentioned" level default
	}
	return sum / float64(count)
}

// providerBreakdown groups data points by provider and computes each
// provider's own mention rate, average position among its mentions, and
// dominant sentiment/prominence. The result is sorted by score descending
// with the provider name as a deterministic secondary key.
func (c *Calculator) providerBreakdown(results []models.ExposureDataPoint) []models.ProviderExposure {
	grouped := make(map[models.Provider][]models.ExposureDataPoint)
	var order []models.Provider
	for _, r := range results {
		if _, seen := grouped[r.Provider]; !seen {
			order = append(order, r.Provider)
		}
		grouped[r.Provider] = append(grouped[r.Provider], r)
	}

	breakdown := make([]models.ProviderExposure, 0, len(order))
	for _, provider := range order {
		points := grouped[provider]

		mentionCount := 0
		var positionSum float64
		positionCount := 0
		sentimentCounts := make(map[models.Sentiment]int)
		prominenceCounts := make(map[models.Prominence]int)

		for _, p := range points {
			if !p.Mentioned {
				continue
			}
			mentionCount++
			if p.Position != 0 {
				positionSum += float64(p.Position)
				positionCount++
			}
			if p.Sentiment != "" {
				sentimentCounts[p.Sentiment]++
			}
			if p.Prominence != "" {
				prominenceCounts[p.Prominence]++
			}
		}

		exposure := models.ProviderExposure{
			Provider:     provider,
			Score:        int(math.Round(float64(mentionCount) / float64(len(points)) * 100)),
			MentionCount: mentionCount,
			Sentiment:    dominantSentiment(sentimentCounts),
			Prominence:   dominantProminence(prominenceCounts),
		}
		if positionCount > 0 {
			avg := positionSum / float64(positionCount)
			exposure.AvgPosition = &avg
		}

		breakdown = append(breakdown, exposure)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Score != breakdown[j].Score {
			return breakdown[i].Score > breakdown[j].Score
		}
		return breakdown[i].Provider < breakdown[j].Provider
	})

	return breakdown
}

// sentimentSeverity orders sentiments for majority-vote tie-breaks. A tie
// resolves toward the sentiment that matters more in a report: a split
// between positive and negative reads as negative, never as noise.
var sentimentSeverity = map[models.Sentiment]int{
	models.SentimentNegative: 2,
	models.SentimentPositive: 1,
	models.SentimentNeutral:  0,
}

func dominantSentiment(counts map[models.Sentiment]int) models.Sentiment {
	var best models.Sentiment
	bestCount := 0
	for _, s := range []models.Sentiment{models.SentimentNegative, models.SentimentPositive, models.SentimentNeutral} {
		n := counts[s]
		if n == 0 {
			continue
		}
		if n > bestCount || (n == bestCount && sentimentSeverity[s] > sentimentSeverity[best]) {
			best = s
			bestCount = n
		}
	}
	return best
}

// dominantProminence breaks ties toward the stronger placement.
func dominantProminence(counts map[models.Prominence]int) models.Prominence {
	ranked := []models.Prominence{
		models.ProminenceFeatured,
		models.ProminencePrimary,
		models.ProminenceSecondary,
		models.ProminenceMentioned,
	}
	var best models.Prominence
	bestCount := 0
	for _, p := range ranked {
		if counts[p] > bestCount {
			best = p
			bestCount = counts[p]
		}
	}
	return best
}

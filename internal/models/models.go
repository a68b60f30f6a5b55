package models

import "time"

// Provider identifies an AI answer engine the bot probes.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGemini     Provider = "gemini"
	ProviderPerplexity Provider = "perplexity"
	ProviderClova      Provider = "clova"
)

// Sentiment of a brand mention inside a provider answer.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Prominence ranks how central a brand mention is within an answer.
type Prominence string

const (
	ProminenceFeatured  Prominence = "featured"
	ProminencePrimary   Prominence = "primary"
	ProminenceSecondary Prominence = "secondary"
	ProminenceMentioned Prominence = "mentioned"
)

// QueryType is the expansion category a derived query belongs to.
type QueryType string

const (
	QueryTypeIntentVariation QueryType = "intent_variation"
	QueryTypeSpecificity     QueryType = "specificity"
	QueryTypePriceFocus      QueryType = "price_focus"
	QueryTypeAlternative     QueryType = "alternative"
	QueryTypeComparison      QueryType = "comparison"
	QueryTypeReview          QueryType = "review"
	QueryTypeRanking         QueryType = "ranking"
	QueryTypeFeatureSpecific QueryType = "feature_specific"
)

// Likelihood estimates how probable a brand mention is for a derived query.
type Likelihood string

const (
	LikelihoodHigh   Likelihood = "high"
	LikelihoodMedium Likelihood = "medium"
	LikelihoodLow    Likelihood = "low"
)

// ExpansionLevel controls how many derived queries are generated per base query.
type ExpansionLevel string

const (
	ExpansionMinimal       ExpansionLevel = "minimal"
	ExpansionStandard      ExpansionLevel = "standard"
	ExpansionComprehensive ExpansionLevel = "comprehensive"
)

// MaxQueries returns the output cap for the level.
func (l ExpansionLevel) MaxQueries() int {
	switch l {
	case ExpansionMinimal:
		return 4
	case ExpansionComprehensive:
		return 12
	default:
		return 8
	}
}

// TrendPeriod selects the look-back window for period-over-period comparison.
type TrendPeriod string

const (
	TrendPeriod7d  TrendPeriod = "7d"
	TrendPeriod30d TrendPeriod = "30d"
	TrendPeriod90d TrendPeriod = "90d"
)

// Days returns the number of days the period covers.
func (p TrendPeriod) Days() int {
	switch p {
	case TrendPeriod7d:
		return 7
	case TrendPeriod90d:
		return 90
	default:
		return 30
	}
}

// QueryExpansionInput carries everything the expanders need to derive test
// queries from one base query.
type QueryExpansionInput struct {
	OriginalQuery  string         `json:"original_query"`
	BrandName      string         `json:"brand_name"`
	Industry       string         `json:"industry"`
	Keywords       []string       `json:"keywords"`
	Competitors    []string       `json:"competitors"`
	ExpansionLevel ExpansionLevel `json:"expansion_level,omitempty"`
}

// DerivedQuery is a generated test prompt used to probe brand visibility from
// a different angle than the original query. Immutable once produced.
type DerivedQuery struct {
	Query                          string     `json:"query"`
	Type                           QueryType  `json:"type"`
	Intent                         string     `json:"intent"`
	RelevanceScore                 float64    `json:"relevance_score"`
	ExpectedBrandMentionLikelihood Likelihood `json:"expected_brand_mention_likelihood"`
}

// ExposureDataPoint is one observed signal from a single provider answer.
// Position is a 1-based rank and zero when unknown; Sentiment and Prominence
// are empty when not observed.
type ExposureDataPoint struct {
	Provider   Provider   `json:"provider"`
	Mentioned  bool       `json:"mentioned"`
	Position   int        `json:"position,omitempty"`
	Sentiment  Sentiment  `json:"sentiment,omitempty"`
	Prominence Prominence `json:"prominence,omitempty"`
}

// ScoreComponents are the four weighted sub-scores, each rounded to 0-100.
type ScoreComponents struct {
	MentionFrequency int `json:"mention_frequency"`
	PositionScore    int `json:"position_score"`
	SentimentScore   int `json:"sentiment_score"`
	ProminenceScore  int `json:"prominence_score"`
}

// ProviderExposure is the per-provider rollup inside an ExposureScore.
// AvgPosition is nil when no mention carried a position; Sentiment and
// Prominence are empty when the provider had no mentions at all.
type ProviderExposure struct {
	Provider     Provider   `json:"provider"`
	Score        int        `json:"score"`
	MentionCount int        `json:"mention_count"`
	AvgPosition  *float64   `json:"avg_position,omitempty"`
	Sentiment    Sentiment  `json:"sentiment,omitempty"`
	Prominence   Prominence `json:"prominence,omitempty"`
}

// ExposureTrend describes the period-over-period movement of a score.
type ExposureTrend struct {
	Direction     string      `json:"direction"` // "up", "down", "stable"
	ChangePercent int         `json:"change_percent"`
	Period        TrendPeriod `json:"period"`
	PreviousScore *int        `json:"previous_score,omitempty"`
}

// ExposureScore is the computed visibility aggregate for one keyword.
// Recomputed on demand from data points, never mutated in place.
type ExposureScore struct {
	Keyword      string             `json:"keyword"`
	OverallScore int                `json:"overall_score"`
	Components   ScoreComponents    `json:"components"`
	Breakdown    []ProviderExposure `json:"breakdown"`
	Trend        *ExposureTrend     `json:"trend,omitempty"`
}

// ScoreHistoryPoint is one stored historical score for a keyword.
type ScoreHistoryPoint struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// ProviderAnswer is one raw answer collected during a scan.
type ProviderAnswer struct {
	Provider    Provider  `json:"provider"`
	Query       string    `json:"query"`
	Content     string    `json:"content"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// ScanRecord is the persisted result of one full scan run.
type ScanRecord struct {
	ID           string          `json:"id"`
	BrandName    string          `json:"brand_name"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     string          `json:"duration"`
	Queries      []DerivedQuery  `json:"queries"`
	AnswerCount  int             `json:"answer_count"`
	Scores       []ExposureScore `json:"scores"`
	ShareOfVoice float64         `json:"share_of_voice"`
}

// Report represents a periodic visibility report.
type Report struct {
	GeneratedAt  time.Time              `json:"generated_at"`
	Period       string                 `json:"period"` // "daily" or "weekly"
	BrandName    string                 `json:"brand_name"`
	TotalAnswers int                    `json:"total_answers"`
	Scores       []ExposureScore        `json:"scores"`
	ShareOfVoice float64                `json:"share_of_voice"`
	Summary      map[string]interface{} `json:"summary"`
}

// Alert represents an urgent notification, e.g. a sharp score drop.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "critical", "urgent", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Keyword   string    `json:"keyword,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package scanning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/expansion"
	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/brandlens/visibility-bot/internal/notifications"
	"github.com/brandlens/visibility-bot/internal/providers"
	"github.com/brandlens/visibility-bot/internal/scoring"
	"github.com/brandlens/visibility-bot/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service runs visibility scans: it derives test queries per keyword, probes
// every enabled provider, scores the answers and delivers the report.
type Service struct {
	config              *config.Config
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	clients             []providers.Client
	templates           *expansion.TemplateExpander
	llm                 *expansion.LLMExpander
	calculator          *scoring.Calculator
	analyzer            *Analyzer
	metrics             *Metrics
	mu                  sync.RWMutex
}

// Metrics holds scan run metrics
type Metrics struct {
	LastRun         time.Time      `json:"last_run"`
	LastRunDuration string         `json:"last_run_duration"`
	TotalAnswers    int            `json:"total_answers"`
	AnswersBySource map[string]int `json:"answers_by_source"`
	KeywordScores   map[string]int `json:"keyword_scores"`
	ShareOfVoice    float64        `json:"share_of_voice"`
	ErrorCount      int            `json:"error_count"`
}

// NewService creates a new scanning service
func NewService(cfg *config.Config, storage storage.StorageInterface, notificationService notifications.NotificationInterface) *Service {
	return &Service{
		config:              cfg,
		storage:             storage,
		notificationService: notificationService,
		clients:             providers.Enabled(providers.NewRegistry(cfg)),
		templates:           expansion.NewTemplateExpander(),
		llm:                 expansion.NewLLMExpander(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		calculator: scoring.NewCalculator(scoring.Weights{
			MentionFrequency: cfg.MentionFrequencyWeight,
			Position:         cfg.PositionWeight,
			Sentiment:        cfg.SentimentWeight,
			Prominence:       cfg.ProminenceWeight,
		}),
		analyzer: NewAnalyzer(cfg.BrandName, cfg.Competitors),
		metrics: &Metrics{
			AnswersBySource: make(map[string]int),
			KeywordScores:   make(map[string]int),
		},
	}
}

// RunScan performs the main scan task across all tracked keywords.
func (s *Service) RunScan() error {
	start := time.Now()
	logrus.Infof("Starting visibility scan for brand %s (%d keywords, %d providers)",
		s.config.BrandName, len(s.config.Keywords), len(s.clients))

	if len(s.clients) == 0 {
		return fmt.Errorf("no providers enabled - configure at least one provider API key")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	record := models.ScanRecord{
		ID:        uuid.NewString(),
		BrandName: s.config.BrandName,
		StartedAt: start,
	}

	var brandMentions, competitorMentions, totalAnswers, errorCount int

	for _, keyword := range s.config.Keywords {
		queries := s.deriveQueries(ctx, keyword)
		record.Queries = append(record.Queries, queries...)

		prompts := make([]string, 0, len(queries)+1)
		prompts = append(prompts, keyword)
		for _, q := range queries {
			prompts = append(prompts, q.Query)
		}

		answers, errs := s.collectAnswers(ctx, prompts)
		totalAnswers += len(answers)
		errorCount += errs

		dataPoints := make([]models.ExposureDataPoint, 0, len(answers))
		for _, answer := range answers {
			dataPoints = append(dataPoints, s.analyzer.DataPoint(answer.Provider, answer.Content))

			b, c := s.analyzer.MentionCounts(answer.Content)
			brandMentions += b
			competitorMentions += c
		}

		score := s.calculator.Calculate(keyword, dataPoints)

		history := s.loadHistory(keyword)
		trend := scoring.CalculateTrend(score.OverallScore, history, s.config.TrendPeriod)
		score.Trend = &trend

		s.checkScoreDrop(keyword, score.OverallScore, history)

		if err := s.appendHistory(keyword, score.OverallScore); err != nil {
			logrus.Errorf("Failed to append score history for %s: %v", keyword, err)
		}

		logrus.Infof("Keyword %q scored %d/100 (%d answers)", keyword, score.OverallScore, len(answers))
		record.Scores = append(record.Scores, score)
	}

	record.AnswerCount = totalAnswers
	record.ShareOfVoice = shareOfVoice(brandMentions, competitorMentions)
	record.Duration = time.Since(start).String()

	if err := s.storeScan(record); err != nil {
		logrus.Errorf("Failed to store scan record: %v", err)
		return err
	}

	s.updateMetrics(record, errorCount)

	report := s.buildReport(record)
	if err := s.notificationService.SendReport(report); err != nil {
		logrus.Errorf("Failed to send report: %v", err)
		return err
	}

	logrus.Infof("Visibility scan completed in %v", time.Since(start))
	return nil
}

// RunQuickCheck probes each keyword with minimal expansion and alerts on
// sharp score drops without storing history or sending a report. Scheduled
// more frequently than the full scan.
func (s *Service) RunQuickCheck() error {
	start := time.Now()
	logrus.Info("Starting quick visibility check")

	if len(s.clients) == 0 {
		return fmt.Errorf("no providers enabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, keyword := range s.config.Keywords {
		input := s.expansionInput(keyword)
		input.ExpansionLevel = models.ExpansionMinimal
		queries := s.templates.Expand(input)

		prompts := []string{keyword}
		for _, q := range queries {
			prompts = append(prompts, q.Query)
		}

		answers, _ := s.collectAnswers(ctx, prompts)

		dataPoints := make([]models.ExposureDataPoint, 0, len(answers))
		for _, answer := range answers {
			dataPoints = append(dataPoints, s.analyzer.DataPoint(answer.Provider, answer.Content))
		}

		score := s.calculator.Calculate(keyword, dataPoints)
		s.checkScoreDrop(keyword, score.OverallScore, s.loadHistory(keyword))
	}

	logrus.Infof("Quick check completed in %v", time.Since(start))
	return nil
}

// deriveQueries expands one keyword into test queries, preferring the LLM
// strategy when enabled and falling back to templates.
func (s *Service) deriveQueries(ctx context.Context, keyword string) []models.DerivedQuery {
	input := s.expansionInput(keyword)

	if s.config.EnableLLMExpansion && s.llm.IsEnabled() {
		return s.llm.ExpandWithFallback(ctx, input, s.templates)
	}
	return s.templates.Expand(input)
}

func (s *Service) expansionInput(keyword string) models.QueryExpansionInput {
	return models.QueryExpansionInput{
		OriginalQuery:  keyword,
		BrandName:      s.config.BrandName,
		Industry:       s.config.Industry,
		Keywords:       s.config.Keywords,
		Competitors:    s.config.Competitors,
		ExpansionLevel: s.config.ExpansionLevel,
	}
}

// collectAnswers fans the prompts out across all enabled providers
// concurrently, one goroutine per provider.
func (s *Service) collectAnswers(ctx context.Context, prompts []string) ([]models.ProviderAnswer, int) {
	var wg sync.WaitGroup
	answersChan := make(chan []models.ProviderAnswer, len(s.clients))
	errorsChan := make(chan error, len(s.clients)*len(prompts))

	for _, client := range s.clients {
		wg.Add(1)
		go func(c providers.Client) {
			defer wg.Done()

			var answers []models.ProviderAnswer
			for _, prompt := range prompts {
				select {
				case <-ctx.Done():
					answersChan <- answers
					return
				default:
				}

				content, err := c.Ask(ctx, prompt)
				if err != nil {
					logrus.Errorf("Error asking %s: %v", c.Name(), err)
					errorsChan <- err
					continue
				}

				answers = append(answers, models.ProviderAnswer{
					Provider:    c.Name(),
					Query:       prompt,
					Content:     content,
					RetrievedAt: time.Now(),
				})
			}
			answersChan <- answers
		}(client)
	}

	go func() {
		wg.Wait()
		close(answersChan)
		close(errorsChan)
	}()

	var allAnswers []models.ProviderAnswer
	for answers := range answersChan {
		allAnswers = append(allAnswers, answers...)
	}

	errorCount := 0
	for range errorsChan {
		errorCount++
	}

	return allAnswers, errorCount
}

// checkScoreDrop alerts when a keyword's score fell sharply against its most
// recent stored score.
func (s *Service) checkScoreDrop(keyword string, currentScore int, history []models.ScoreHistoryPoint) {
	latest := latestHistoryPoint(history)
	if latest == nil {
		return
	}

	drop := latest.Score - currentScore
	if drop < s.config.ScoreDropThreshold {
		return
	}

	alert := &models.Alert{
		ID:        uuid.NewString(),
		Type:      "urgent",
		Title:     fmt.Sprintf("Visibility drop for %q", keyword),
		Message:   fmt.Sprintf("Exposure score for %q dropped from %d to %d", keyword, latest.Score, currentScore),
		Keyword:   keyword,
		CreatedAt: time.Now(),
	}

	logrus.Warnf("Score drop detected for %q: %d -> %d", keyword, latest.Score, currentScore)
	if err := s.notificationService.SendAlert(alert); err != nil {
		logrus.Errorf("Failed to send score drop alert: %v", err)
	}
}

func latestHistoryPoint(history []models.ScoreHistoryPoint) *models.ScoreHistoryPoint {
	var latest *models.ScoreHistoryPoint
	for i := range history {
		if latest == nil || history[i].Date.After(latest.Date) {
			latest = &history[i]
		}
	}
	return latest
}

func shareOfVoice(brandMentions, competitorMentions int) float64 {
	total := brandMentions + competitorMentions
	if total == 0 {
		return 0
	}
	return float64(brandMentions) / float64(total) * 100
}

func (s *Service) historyPath(keyword string) string {
	return fmt.Sprintf("history/%s/%s.json", sanitize(s.config.BrandName), sanitize(keyword))
}

func sanitize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// loadHistory reads the stored score series for a keyword. A missing blob is
// a first scan, not an error.
func (s *Service) loadHistory(keyword string) []models.ScoreHistoryPoint {
	data, err := s.storage.Retrieve(s.historyPath(keyword))
	if err != nil {
		logrus.Debugf("No score history for %q: %v", keyword, err)
		return nil
	}

	var history []models.ScoreHistoryPoint
	if err := json.Unmarshal(data, &history); err != nil {
		logrus.Errorf("Failed to parse score history for %q: %v", keyword, err)
		return nil
	}
	return history
}

func (s *Service) appendHistory(keyword string, score int) error {
	history := s.loadHistory(keyword)
	history = append(history, models.ScoreHistoryPoint{Date: time.Now(), Score: score})

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal score history: %w", err)
	}
	return s.storage.Store(s.historyPath(keyword), data)
}

func (s *Service) storeScan(record models.ScanRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal scan record: %w", err)
	}

	filename := fmt.Sprintf("scans/%s/%s.json", sanitize(record.BrandName), record.StartedAt.Format("2006-01-02-15-04-05"))
	return s.storage.Store(filename, data)
}

func (s *Service) buildReport(record models.ScanRecord) *models.Report {
	report := &models.Report{
		GeneratedAt:  time.Now(),
		Period:       s.config.ScanSchedule,
		BrandName:    record.BrandName,
		TotalAnswers: record.AnswerCount,
		Scores:       record.Scores,
		ShareOfVoice: record.ShareOfVoice,
		Summary:      make(map[string]interface{}),
	}

	scoreByKeyword := make(map[string]int)
	for _, score := range record.Scores {
		scoreByKeyword[score.Keyword] = score.OverallScore
	}
	report.Summary["scores"] = scoreByKeyword
	report.Summary["derived_queries"] = len(record.Queries)

	return report
}

func (s *Service) updateMetrics(record models.ScanRecord, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = record.Duration
	s.metrics.TotalAnswers = record.AnswerCount
	s.metrics.ShareOfVoice = record.ShareOfVoice
	s.metrics.ErrorCount = errorCount

	s.metrics.AnswersBySource = make(map[string]int)
	s.metrics.KeywordScores = make(map[string]int)
	for _, score := range record.Scores {
		s.metrics.KeywordScores[score.Keyword] = score.OverallScore
		for _, exposure := range score.Breakdown {
			s.metrics.AnswersBySource[string(exposure.Provider)] += exposure.MentionCount
		}
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

// PreviewExpansion exposes template expansion for the preview endpoint and
// local harnesses.
func (s *Service) PreviewExpansion(input models.QueryExpansionInput) []models.DerivedQuery {
	if input.ExpansionLevel == "" {
		input.ExpansionLevel = s.config.ExpansionLevel
	}
	return s.templates.Expand(input)
}

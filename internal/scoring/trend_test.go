package scoring

import (
	"testing"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTrend_UpFromOlderPoint(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	history := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -10), Score: 50},
	}

	trend := calculateTrendAt(now, 80, history, models.TrendPeriod7d)

	assert.Equal(t, "up", trend.Direction)
	assert.Equal(t, 60, trend.ChangePercent)
	if assert.NotNil(t, trend.PreviousScore) {
		assert.Equal(t, 50, *trend.PreviousScore)
	}
	assert.Equal(t, models.TrendPeriod7d, trend.Period)
}

func TestCalculateTrend_NoPointInWindow(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []models.ScoreHistoryPoint
	}{
		{"Empty history", nil},
		{
			"Only recent points",
			[]models.ScoreHistoryPoint{
				{Date: now.AddDate(0, 0, -2), Score: 70},
				{Date: now.AddDate(0, 0, -5), Score: 65},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := calculateTrendAt(now, 80, tt.history, models.TrendPeriod7d)
			assert.Equal(t, "stable", trend.Direction)
			assert.Equal(t, 0, trend.ChangePercent)
			assert.Nil(t, trend.PreviousScore)
		})
	}
}

func TestCalculateTrend_PicksMostRecentInsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	history := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -40), Score: 20},
		{Date: now.AddDate(0, 0, -8), Score: 60},
		{Date: now.AddDate(0, 0, -3), Score: 75}, // too recent for a 7d window
	}

	trend := calculateTrendAt(now, 72, history, models.TrendPeriod7d)

	if assert.NotNil(t, trend.PreviousScore) {
		assert.Equal(t, 60, *trend.PreviousScore)
	}
	assert.Equal(t, 20, trend.ChangePercent)
	assert.Equal(t, "up", trend.Direction)
}

func TestCalculateTrend_ZeroPreviousScore(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	history := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -14), Score: 0},
	}

	trend := calculateTrendAt(now, 40, history, models.TrendPeriod7d)
	assert.Equal(t, 100, trend.ChangePercent, "division by zero falls back to a full change signal")
	assert.Equal(t, "up", trend.Direction)

	flat := calculateTrendAt(now, 0, history, models.TrendPeriod7d)
	assert.Equal(t, 0, flat.ChangePercent)
	assert.Equal(t, "stable", flat.Direction)
}

func TestCalculateTrend_SmallChangeIsStable(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	history := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -10), Score: 50},
	}

	// 52 vs 50 is a 4% change, under the 5% stability threshold.
	trend := calculateTrendAt(now, 52, history, models.TrendPeriod7d)
	assert.Equal(t, "stable", trend.Direction)
	assert.Equal(t, 4, trend.ChangePercent)
	if assert.NotNil(t, trend.PreviousScore) {
		assert.Equal(t, 50, *trend.PreviousScore)
	}
}

func TestCalculateTrend_PeriodWindows(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	history := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -45), Score: 40},
	}

	// A 45-day-old point is at or before the 30d cutoff, so it is the
	// previous score for the 30d window.
	shortWindow := calculateTrendAt(now, 60, history, models.TrendPeriod30d)
	if assert.NotNil(t, shortWindow.PreviousScore) {
		assert.Equal(t, 40, *shortWindow.PreviousScore)
	}
	assert.Equal(t, 50, shortWindow.ChangePercent)
	assert.Equal(t, "down", calculateTrendAt(now, 20, history, models.TrendPeriod30d).Direction)

	// The same point is too recent for a 90d look-back.
	longWindow := calculateTrendAt(now, 60, history, models.TrendPeriod90d)
	assert.Nil(t, longWindow.PreviousScore)
	assert.Equal(t, "stable", longWindow.Direction)
	assert.Equal(t, 0, longWindow.ChangePercent)

	// A point older than the long window serves it.
	oldHistory := []models.ScoreHistoryPoint{
		{Date: now.AddDate(0, 0, -100), Score: 40},
	}
	served := calculateTrendAt(now, 60, oldHistory, models.TrendPeriod90d)
	if assert.NotNil(t, served.PreviousScore) {
		assert.Equal(t, 40, *served.PreviousScore)
	}
	assert.Equal(t, 50, served.ChangePercent)
}

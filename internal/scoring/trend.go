package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/brandlens/visibility-bot/internal/models"
)

// stableThreshold is the |change percent| under which a score movement is
// reported as stable rather than up or down.
const stableThreshold = 5

// CalculateTrend derives the directional trend for a keyword by comparing the
// current score against the most recent historical score at or before the
// start of the look-back period. History points are supplied by the caller;
// no historical point inside the window yields a stable trend with no
// previous score.
func CalculateTrend(currentScore int, history []models.ScoreHistoryPoint, period models.TrendPeriod) models.ExposureTrend {
	return calculateTrendAt(time.Now(), currentScore, history, period)
}

func calculateTrendAt(now time.Time, currentScore int, history []models.ScoreHistoryPoint, period models.TrendPeriod) models.ExposureTrend {
	sorted := make([]models.ScoreHistoryPoint, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	cutoff := now.AddDate(0, 0, -period.Days())

	var previous *models.ScoreHistoryPoint
	for i := range sorted {
		if !sorted[i].Date.After(cutoff) {
			previous = &sorted[i]
			break
		}
	}

	if previous == nil {
		return models.ExposureTrend{
			Direction:     "stable",
			ChangePercent: 0,
			Period:        period,
		}
	}

	previousScore := previous.Score
	delta := currentScore - previousScore

	var changePercent int
	if previousScore == 0 {
		// Still signal a change without dividing by zero.
		if currentScore > 0 {
			changePercent = 100
		}
	} else {
		changePercent = int(math.Round(float64(delta) / float64(previousScore) * 100))
	}

	direction := "stable"
	if abs(changePercent) >= stableThreshold {
		// Direction follows the raw delta, not the clamped percent.
		if delta > 0 {
			direction = "up"
		} else {
			direction = "down"
		}
	}

	return models.ExposureTrend{
		Direction:     direction,
		ChangePercent: changePercent,
		Period:        period,
		PreviousScore: &previousScore,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

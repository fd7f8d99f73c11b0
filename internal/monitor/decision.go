package monitor

import (
	"math"
	"time"

	"asset-monitor/internal/models"
)

// DropPercent returns the relative decline of the latest close from the
// trailing high, as a percentage.
func DropPercent(high, latest float64) float64 {
	if high <= 0 {
		return 0
	}
	return (high - latest) / high * 100
}

// ShouldAlert reports whether an alert fires: the drop meets the threshold
// and no prior alert within the suppression window blocks it.
func ShouldAlert(dropPct, threshold float64, prior *models.AlertState, now time.Time, windowDays int) bool {
	return dropPct >= threshold && !suppressed(prior, now, windowDays)
}

// suppressed reports whether a prior alert is still inside the suppression
// window. The boundary compares calendar days, not clock durations.
func suppressed(prior *models.AlertState, now time.Time, windowDays int) bool {
	if prior == nil {
		return false
	}
	last, err := time.Parse(models.DateFormat, prior.LastAlertDate)
	if err != nil {
		// Unreadable state never blocks an alert.
		return false
	}
	return daysBetween(last, now) < windowDays
}

// daysBetween returns the number of calendar days from one date to another.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// round2 rounds to two decimal places for reporting.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package monitor

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"asset-monitor/internal/models"
)

// Property 1: Drop percentage formula
//
// Property: For any high M > 0 and latest close C, DropPercent(M, C) equals
// (M - C) / M * 100 within floating-point tolerance.
func TestProperty_DropPercentFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("DropPercent matches (M-C)/M*100", prop.ForAll(
		func(high, latest float64) bool {
			got := DropPercent(high, latest)
			want := (high - latest) / high * 100
			return math.Abs(got-want) < 1e-9
		},
		gen.Float64Range(0.01, 10000.0),
		gen.Float64Range(0.0, 10000.0),
	))

	properties.TestingRun(t)
}

// Property 2: Alert decision rule
//
// Property: For any (dropPct, threshold, priorState) combination, an alert
// fires iff the drop meets the threshold AND either no prior alert exists or
// the prior alert's date lies outside the suppression window.
func TestProperty_AlertDecisionRule(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, 8, 22, 14, 0, 0, 0, time.UTC)

	properties.Property("alert iff threshold met and window clear", prop.ForAll(
		func(dropPct, threshold float64, hasPrior bool, daysAgo, windowDays int) bool {
			var prior *models.AlertState
			if hasPrior {
				prior = &models.AlertState{
					LastAlertDate:  now.AddDate(0, 0, -daysAgo).Format(models.DateFormat),
					LastAlertPrice: 100.0,
				}
			}

			got := ShouldAlert(dropPct, threshold, prior, now, windowDays)
			want := dropPct >= threshold && (!hasPrior || daysAgo >= windowDays)
			return got == want
		},
		gen.Float64Range(0.0, 20.0),
		gen.Float64Range(0.5, 10.0),
		gen.Bool(),
		gen.IntRange(0, 40),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

// Property 3: Suppression after a fired alert
//
// Property: Once an alert is recorded for the current day, no drop value can
// fire a second alert the same day while the window is at least one day.
func TestProperty_SameDaySuppressionHolds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, 8, 22, 14, 0, 0, 0, time.UTC)

	properties.Property("same-day prior alert always suppresses", prop.ForAll(
		func(dropPct float64, windowDays int) bool {
			prior := &models.AlertState{
				LastAlertDate:  now.Format(models.DateFormat),
				LastAlertPrice: 100.0,
			}
			return !ShouldAlert(dropPct, 2.0, prior, now, windowDays)
		},
		gen.Float64Range(2.0, 50.0),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

// Package marketdata provides access to daily price history.
package marketdata

import (
	"context"
	"time"

	"asset-monitor/internal/models"
)

// PriceSource fetches daily closing prices for a symbol over a trailing
// window of calendar days.
type PriceSource interface {
	DailyCloses(ctx context.Context, symbol string, days int) ([]models.Candle, error)
}

// LatestClose returns the most recent close in the series.
// The series must be ordered oldest first and non-empty.
func LatestClose(series []models.Candle) float64 {
	return series[len(series)-1].Close
}

// HighestClose returns the maximum close in the series and the date it
// occurred on. The series must be non-empty.
func HighestClose(series []models.Candle) (float64, time.Time) {
	high := series[0].Close
	highDate := series[0].Date
	for _, c := range series[1:] {
		if c.Close > high {
			high = c.Close
			highDate = c.Date
		}
	}
	return high, highDate
}

package marketdata

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	apperrors "asset-monitor/internal/errors"
	"asset-monitor/internal/models"
)

// YahooSource fetches daily price history from Yahoo Finance.
type YahooSource struct{}

// NewYahooSource creates a new Yahoo Finance price source.
func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// DailyCloses fetches the trailing daily close series for a symbol.
// Returns a FetchError when the source is unreachable or returns no bars.
func (y *YahooSource) DailyCloses(ctx context.Context, symbol string, days int) ([]models.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)

	var series []models.Candle
	for iter.Next() {
		bar := iter.Bar()
		series = append(series, models.Candle{
			Date:  time.Unix(int64(bar.Timestamp), 0),
			Close: toPrice(bar.Close),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.NewFetchError(symbol, "chart request failed", err)
	}
	if len(series) == 0 {
		return nil, apperrors.NewFetchError(symbol, "no data returned", apperrors.ErrNoData)
	}

	return series, nil
}

// toPrice converts a bar price to a float rounded to cents, matching how
// prices are reported in alerts and logs.
func toPrice(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Package models provides domain models for the asset monitor.
package models

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day format used for persisted alert dates.
const DateFormat = "2006-01-02"

// Ticker identifies a tracked asset.
type Ticker struct {
	Symbol string
	Name   string
}

// Candle represents one daily closing price.
type Candle struct {
	Date  time.Time
	Close float64
}

// AlertState records the last alert fired for a ticker.
type AlertState struct {
	LastAlertDate  string  `json:"last_alert_date"` // calendar day, DateFormat
	LastAlertPrice float64 `json:"last_alert_price"`
}

// AlertStateMap maps ticker symbols to their persisted alert state.
type AlertStateMap map[string]AlertState

// TickerReport is the outcome of evaluating one ticker during a run.
type TickerReport struct {
	Symbol      string
	Name        string
	LatestClose float64
	High        float64
	HighDate    time.Time
	DropPct     float64
	Alerted     bool
	Suppressed  bool
	FetchFailed bool
	Status      string
}

// RunLogEntry is one timestamped line of the append-only run log.
type RunLogEntry struct {
	Timestamp time.Time
	Message   string
}

// String formats the entry the way it appears in the remote log.
func (e RunLogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Message)
}

// Package notify provides alert delivery for the asset monitor.
package notify

import (
	"context"
	"fmt"
	"time"

	"asset-monitor/pkg/utils"
)

// Alert carries everything needed to compose a price-drop notification.
type Alert struct {
	Symbol       string
	Name         string
	CurrentPrice float64
	RecentHigh   float64
	HighDate     time.Time
	DropPct      float64
	Threshold    float64
	LookbackDays int
	Time         time.Time
}

// Notifier delivers price-drop alerts.
type Notifier interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// Subject builds the alert email subject line.
func (a Alert) Subject() string {
	return fmt.Sprintf("%s Alert: %s dropped %s from recent high",
		a.Name, a.Symbol, utils.FormatPercent(a.DropPct))
}

// Body builds the plain-text alert email body.
func (a Alert) Body() string {
	return fmt.Sprintf(`Price Alert

%s (%s)
  Current Price: %s
  Recent High: %s (on %s)
  Drop from High: %s

Alert threshold: %s drop from %d-day high
Time: %s
`,
		a.Name,
		a.Symbol,
		utils.FormatUSD(a.CurrentPrice),
		utils.FormatUSD(a.RecentHigh),
		a.HighDate.Format("2006-01-02"),
		utils.FormatPercent(a.DropPct),
		utils.FormatPercent(a.Threshold),
		a.LookbackDays,
		a.Time.Format("2006-01-02 15:04:05"),
	)
}

// NoOpNotifier discards alerts. Used for dry runs and when email is disabled.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// SendAlert does nothing.
func (n *NoOpNotifier) SendAlert(ctx context.Context, alert Alert) error {
	return nil
}

// Package monitor implements the fetch-check-notify-persist pipeline.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"asset-monitor/internal/config"
	"asset-monitor/internal/logging"
	"asset-monitor/internal/marketdata"
	"asset-monitor/internal/models"
	"asset-monitor/internal/notify"
	"asset-monitor/internal/store"
	"asset-monitor/pkg/utils"
)

// Runner performs one monitoring pass over the configured tickers.
type Runner struct {
	tickers    []models.Ticker
	threshold  float64
	lookback   int
	windowDays int
	dryRun     bool

	source   marketdata.PriceSource
	notifier notify.Notifier
	store    store.StateStore
	logger   zerolog.Logger

	now func() time.Time
}

// RunResult summarizes one completed pass.
type RunResult struct {
	Reports     []models.TickerReport
	AlertsSent  int
	StateSaved  bool
	LogAppended bool
}

// NewRunner creates a Runner from configuration and its collaborators.
func NewRunner(cfg *config.Config, source marketdata.PriceSource, notifier notify.Notifier, st store.StateStore, logger zerolog.Logger) *Runner {
	tickers := make([]models.Ticker, 0, len(cfg.Monitor.Tickers))
	for _, t := range cfg.Monitor.Tickers {
		tickers = append(tickers, models.Ticker{Symbol: t.Symbol, Name: t.Name})
	}

	return &Runner{
		tickers:    tickers,
		threshold:  cfg.Monitor.DropThresholdPercent,
		lookback:   cfg.Monitor.LookbackDays,
		windowDays: cfg.Monitor.SuppressionWindowDays,
		source:     source,
		notifier:   notifier,
		store:      st,
		logger:     logger,
		now:        time.Now,
	}
}

// SetDryRun makes the runner evaluate and log without sending email or
// persisting state.
func (r *Runner) SetDryRun(dry bool) {
	r.dryRun = dry
}

// Run executes one full pass: load state, evaluate every ticker in order,
// write changed state back, append the run log. Per-ticker and per-step
// failures are isolated; the pass always completes.
func (r *Runner) Run(ctx context.Context) *RunResult {
	now := r.now()
	today := now.Format(models.DateFormat)

	r.logger.Info().
		Int("tickers", len(r.tickers)).
		Float64("threshold_pct", r.threshold).
		Int("lookback_days", r.lookback).
		Bool("dry_run", r.dryRun).
		Msg("monitor run started")

	state, err := r.store.LoadState(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("loading alert state failed, treating as empty")
		state = models.AlertStateMap{}
	}

	result := &RunResult{}
	entries := []models.RunLogEntry{
		{Timestamp: now, Message: "=== Asset Monitor Run Started ==="},
	}
	stateChanged := false

	for _, t := range r.tickers {
		report := r.evaluateTicker(ctx, t, state, now)
		if report.Alerted {
			state[t.Symbol] = models.AlertState{
				LastAlertDate:  today,
				LastAlertPrice: report.LatestClose,
			}
			stateChanged = true
			result.AlertsSent++
		}
		entries = append(entries, models.RunLogEntry{Timestamp: r.now(), Message: report.Status})
		result.Reports = append(result.Reports, report)
	}

	if stateChanged && !r.dryRun {
		if err := r.store.SaveState(ctx, state); err != nil {
			// The alert already went out; the next run may repeat it.
			r.logger.Error().Err(err).Msg("saving alert state failed")
		} else {
			result.StateSaved = true
		}
	}

	if err := r.store.AppendRunLog(ctx, entries); err != nil {
		r.logger.Error().Err(err).Msg("appending run log failed")
	} else {
		result.LogAppended = true
	}

	r.logger.Info().Int("alerts_sent", result.AlertsSent).Msg("monitor run finished")
	return result
}

// evaluateTicker fetches one ticker's series, computes the drop from the
// trailing high and sends an alert when the decision rule fires.
func (r *Runner) evaluateTicker(ctx context.Context, t models.Ticker, state models.AlertStateMap, now time.Time) models.TickerReport {
	logger := logging.WithSymbol(r.logger, t.Symbol)
	report := models.TickerReport{Symbol: t.Symbol, Name: t.Name}

	series, err := r.source.DailyCloses(ctx, t.Symbol, r.lookback)
	if err != nil {
		logger.Error().Err(err).Msg("price fetch failed")
		report.FetchFailed = true
		report.Status = fmt.Sprintf("%s: fetch failed - %v", t.Symbol, err)
		return report
	}

	report.LatestClose = marketdata.LatestClose(series)
	report.High, report.HighDate = marketdata.HighestClose(series)
	report.DropPct = round2(DropPercent(report.High, report.LatestClose))

	logger.Info().
		Float64("close", report.LatestClose).
		Float64("high", report.High).
		Float64("drop_pct", report.DropPct).
		Msg("ticker evaluated")

	var prior *models.AlertState
	if st, ok := state[t.Symbol]; ok {
		prior = &st
	}

	detail := fmt.Sprintf("%s | High=%s (%s) | Drop=%s",
		utils.FormatUSD(report.LatestClose),
		utils.FormatUSD(report.High),
		report.HighDate.Format(models.DateFormat),
		utils.FormatPercent(report.DropPct))

	switch {
	case report.DropPct < r.threshold:
		report.Status = fmt.Sprintf("%s: no alert | %s", t.Symbol, detail)

	case suppressed(prior, now, r.windowDays):
		report.Suppressed = true
		logger.Info().Str("last_alert", prior.LastAlertDate).Msg("alert suppressed by prior alert")
		report.Status = fmt.Sprintf("%s: alert suppressed | %s", t.Symbol, detail)

	case r.dryRun:
		report.Status = fmt.Sprintf("%s: alert skipped (dry run) | %s", t.Symbol, detail)

	default:
		alert := notify.Alert{
			Symbol:       t.Symbol,
			Name:         t.Name,
			CurrentPrice: report.LatestClose,
			RecentHigh:   report.High,
			HighDate:     report.HighDate,
			DropPct:      report.DropPct,
			Threshold:    r.threshold,
			LookbackDays: r.lookback,
			Time:         now,
		}
		if err := r.notifier.SendAlert(ctx, alert); err != nil {
			logger.Error().Err(err).Msg("alert delivery failed")
			report.Status = fmt.Sprintf("%s: alert failed - %v", t.Symbol, err)
		} else {
			report.Alerted = true
			logger.Info().Msg("alert sent")
			report.Status = fmt.Sprintf("%s: ALERT SENT | %s", t.Symbol, detail)
		}
	}

	return report
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"asset-monitor/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "monitor.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_EmptyState(t *testing.T) {
	st := newTestSQLiteStore(t)

	state, err := st.LoadState(context.Background())
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(state) != 0 {
		t.Errorf("fresh store has %d entries, want 0", len(state))
	}
}

func TestSQLiteStore_StateRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	in := models.AlertStateMap{
		"GLD": {LastAlertDate: "2025-08-22", LastAlertPrice: 186.00},
		"SLV": {LastAlertDate: "2025-08-20", LastAlertPrice: 29.80},
	}
	if err := st.SaveState(ctx, in); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	out, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("loaded %d entries, want %d", len(out), len(in))
	}
	for sym, want := range in {
		got, ok := out[sym]
		if !ok {
			t.Fatalf("missing state for %s", sym)
		}
		if got != want {
			t.Errorf("%s state = %+v, want %+v", sym, got, want)
		}
	}
}

func TestSQLiteStore_StateUpsert(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first := models.AlertStateMap{"GLD": {LastAlertDate: "2025-08-20", LastAlertPrice: 188.00}}
	if err := st.SaveState(ctx, first); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	second := models.AlertStateMap{"GLD": {LastAlertDate: "2025-08-22", LastAlertPrice: 186.00}}
	if err := st.SaveState(ctx, second); err != nil {
		t.Fatalf("SaveState (update): %v", err)
	}

	out, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := out["GLD"]; got != second["GLD"] {
		t.Errorf("state = %+v, want %+v", got, second["GLD"])
	}
}

func TestSQLiteStore_RunLogAppend(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Date(2025, 8, 22, 9, 30, 0, 0, time.UTC)
	entries := []models.RunLogEntry{
		{Timestamp: now, Message: "=== Asset Monitor Run Started ==="},
		{Timestamp: now, Message: "GLD: ALERT SENT | $186.00 | High=$190.00 (2025-08-01) | Drop=2.11%"},
	}
	if err := st.AppendRunLog(ctx, entries); err != nil {
		t.Fatalf("AppendRunLog: %v", err)
	}
	if err := st.AppendRunLog(ctx, []models.RunLogEntry{{Timestamp: now, Message: "SLV: no alert"}}); err != nil {
		t.Fatalf("AppendRunLog (second): %v", err)
	}

	got, err := st.RecentRunLog(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRunLog: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("log has %d entries, want 3", len(got))
	}
	// Newest first.
	if got[0].Message != "SLV: no alert" {
		t.Errorf("newest entry = %q, want the last appended", got[0].Message)
	}
}

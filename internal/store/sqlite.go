package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	apperrors "asset-monitor/internal/errors"
	"asset-monitor/internal/models"
)

// SQLiteStore persists alert state and the run log in a local SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the required tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Per-ticker alert suppression state
	CREATE TABLE IF NOT EXISTS alert_state (
		symbol TEXT PRIMARY KEY,
		last_alert_date TEXT NOT NULL,
		last_alert_price REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Append-only run log
	CREATE TABLE IF NOT EXISTS run_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		message TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadState reads the full alert state mapping.
func (s *SQLiteStore) LoadState(ctx context.Context) (models.AlertStateMap, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT symbol, last_alert_date, last_alert_price FROM alert_state")
	if err != nil {
		return nil, apperrors.NewStoreError("state load", err)
	}
	defer rows.Close()

	state := models.AlertStateMap{}
	for rows.Next() {
		var symbol string
		var st models.AlertState
		if err := rows.Scan(&symbol, &st.LastAlertDate, &st.LastAlertPrice); err != nil {
			return nil, apperrors.NewStoreError("state scan", err)
		}
		state[symbol] = st
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("state load", err)
	}
	return state, nil
}

// SaveState upserts every entry of the mapping in one transaction.
func (s *SQLiteStore) SaveState(ctx context.Context, state models.AlertStateMap) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("state save", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alert_state (symbol, last_alert_date, last_alert_price, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			last_alert_date = excluded.last_alert_date,
			last_alert_price = excluded.last_alert_price,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return apperrors.NewStoreError("state save", err)
	}
	defer stmt.Close()

	for symbol, st := range state {
		if _, err := stmt.ExecContext(ctx, symbol, st.LastAlertDate, st.LastAlertPrice); err != nil {
			return apperrors.NewStoreError("state save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError("state save", err)
	}
	return nil
}

// AppendRunLog inserts the entries into the run_log table.
func (s *SQLiteStore) AppendRunLog(ctx context.Context, entries []models.RunLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("log append", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO run_log (timestamp, message) VALUES (?, ?)")
	if err != nil {
		return apperrors.NewStoreError("log append", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Timestamp, e.Message); err != nil {
			return apperrors.NewStoreError("log append", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError("log append", err)
	}
	return nil
}

// RecentRunLog returns the most recent run log entries, newest first.
func (s *SQLiteStore) RecentRunLog(ctx context.Context, limit int) ([]models.RunLogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT timestamp, message FROM run_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, apperrors.NewStoreError("log read", err)
	}
	defer rows.Close()

	var entries []models.RunLogEntry
	for rows.Next() {
		var e models.RunLogEntry
		if err := rows.Scan(&e.Timestamp, &e.Message); err != nil {
			return nil, apperrors.NewStoreError("log scan", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

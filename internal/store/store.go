// Package store provides persistence for alert state and the run log.
package store

import (
	"context"

	"asset-monitor/internal/models"
)

// StateStore persists per-ticker alert state across runs and records the
// append-only run log. Runs never overlap, so implementations assume a
// single writer.
type StateStore interface {
	// LoadState reads the full alert state mapping. A store that has never
	// been written returns an empty map.
	LoadState(ctx context.Context) (models.AlertStateMap, error)

	// SaveState writes the full alert state mapping back.
	SaveState(ctx context.Context, state models.AlertStateMap) error

	// AppendRunLog appends the given entries to the run log. Entries are
	// never mutated or deleted afterwards.
	AppendRunLog(ctx context.Context, entries []models.RunLogEntry) error

	// Close releases any underlying resources.
	Close() error
}

// MemoryStore keeps state for the lifetime of the process only. Used when
// no persistent backend is configured; alerts may repeat across runs.
type MemoryStore struct {
	state models.AlertStateMap
	log   []models.RunLogEntry
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: models.AlertStateMap{}}
}

// LoadState returns a copy of the in-memory state.
func (m *MemoryStore) LoadState(ctx context.Context) (models.AlertStateMap, error) {
	out := make(models.AlertStateMap, len(m.state))
	for k, v := range m.state {
		out[k] = v
	}
	return out, nil
}

// SaveState replaces the in-memory state.
func (m *MemoryStore) SaveState(ctx context.Context, state models.AlertStateMap) error {
	m.state = make(models.AlertStateMap, len(state))
	for k, v := range state {
		m.state[k] = v
	}
	return nil
}

// AppendRunLog appends entries to the in-memory log.
func (m *MemoryStore) AppendRunLog(ctx context.Context, entries []models.RunLogEntry) error {
	m.log = append(m.log, entries...)
	return nil
}

// RunLog returns the accumulated log entries.
func (m *MemoryStore) RunLog() []models.RunLogEntry {
	return m.log
}

// Close does nothing.
func (m *MemoryStore) Close() error {
	return nil
}

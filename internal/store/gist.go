package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"asset-monitor/internal/config"
	apperrors "asset-monitor/internal/errors"
	"asset-monitor/internal/models"
)

const (
	gistStateFile = "monitor_state.json"
	gistLogFile   = "monitor.log"
)

// GistStore persists alert state and the run log in a GitHub Gist: the
// state mapping as a JSON file and the run log as a plain-text file that
// only ever grows.
type GistStore struct {
	client *resty.Client
	gistID string
}

// NewGistStore creates a new Gist-backed store.
func NewGistStore(cfg config.GistConfig) *GistStore {
	client := resty.New().
		SetBaseURL("https://api.github.com").
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "token "+cfg.Token).
		SetHeader("Accept", "application/vnd.github+json")

	return &GistStore{
		client: client,
		gistID: cfg.ID,
	}
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Files map[string]gistFile `json:"files"`
}

// fetch retrieves the current gist contents.
func (g *GistStore) fetch(ctx context.Context) (*gistPayload, error) {
	var out gistPayload
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/gists/" + g.gistID)
	if err != nil {
		return nil, apperrors.NewStoreError("gist fetch", err)
	}
	if resp.IsError() {
		return nil, apperrors.NewStoreError("gist fetch", fmt.Errorf("status %d", resp.StatusCode()))
	}
	return &out, nil
}

// update patches the given gist files.
func (g *GistStore) update(ctx context.Context, files map[string]gistFile) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(gistPayload{Files: files}).
		Patch("/gists/" + g.gistID)
	if err != nil {
		return apperrors.NewStoreError("gist update", err)
	}
	if resp.IsError() {
		return apperrors.NewStoreError("gist update", fmt.Errorf("status %d", resp.StatusCode()))
	}
	return nil
}

// LoadState reads the alert state JSON from the gist. A missing state file
// means no alerts have been recorded yet.
func (g *GistStore) LoadState(ctx context.Context) (models.AlertStateMap, error) {
	payload, err := g.fetch(ctx)
	if err != nil {
		return nil, err
	}

	file, ok := payload.Files[gistStateFile]
	if !ok || file.Content == "" {
		return models.AlertStateMap{}, nil
	}

	var state models.AlertStateMap
	if err := json.Unmarshal([]byte(file.Content), &state); err != nil {
		return nil, apperrors.NewStoreError("state decode", err)
	}
	return state, nil
}

// SaveState writes the alert state JSON back to the gist.
func (g *GistStore) SaveState(ctx context.Context, state models.AlertStateMap) error {
	body, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return apperrors.NewStoreError("state encode", err)
	}
	return g.update(ctx, map[string]gistFile{
		gistStateFile: {Content: string(body)},
	})
}

// AppendRunLog appends entries to the gist log file. The gist API replaces
// file contents wholesale, so the current log is fetched first and the new
// lines appended to it.
func (g *GistStore) AppendRunLog(ctx context.Context, entries []models.RunLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	payload, err := g.fetch(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(payload.Files[gistLogFile].Content)
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}

	return g.update(ctx, map[string]gistFile{
		gistLogFile: {Content: sb.String()},
	})
}

// Close does nothing; the HTTP client needs no teardown.
func (g *GistStore) Close() error {
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	// Empty values are ignored by the override logic.
	for _, key := range []string{
		"SMTP_SERVER", "SMTP_PORT", "SENDER_EMAIL", "SENDER_PASSWORD",
		"RECIPIENT_EMAIL", "GIST_ID", "GIST_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_DefaultsFromTemplate(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
[email]
enabled = false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Monitor.DropThresholdPercent != 2.0 {
		t.Errorf("threshold = %v, want 2.0", cfg.Monitor.DropThresholdPercent)
	}
	if cfg.Monitor.LookbackDays != 30 {
		t.Errorf("lookback = %v, want 30", cfg.Monitor.LookbackDays)
	}
	if cfg.Monitor.SuppressionWindowDays != 1 {
		t.Errorf("suppression window = %v, want 1", cfg.Monitor.SuppressionWindowDays)
	}
	if len(cfg.Monitor.Tickers) != 4 {
		t.Fatalf("tickers = %d, want the 4 defaults", len(cfg.Monitor.Tickers))
	}
	if cfg.Monitor.Tickers[0].Symbol != "GLD" || cfg.Monitor.Tickers[0].Name != "Gold" {
		t.Errorf("first default ticker = %+v", cfg.Monitor.Tickers[0])
	}
	if cfg.Store.Backend != "gist" {
		t.Errorf("backend = %q, want gist", cfg.Store.Backend)
	}
}

func TestLoad_MissingConfigFileCreatesTemplate(t *testing.T) {
	clearEnvOverrides(t)
	t.Setenv("SENDER_EMAIL", "alerts@example.com")
	t.Setenv("RECIPIENT_EMAIL", "me@example.com")

	dir := filepath.Join(t.TempDir(), "fresh")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load with env-only config: %v", err)
	}
	if cfg.Email.From != "alerts@example.com" {
		t.Errorf("From = %q", cfg.Email.From)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template was not created: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
[email]
enabled = true
smtp_host = "smtp.example.org"
from = "file@example.com"
to = "file-to@example.com"
`)

	t.Setenv("SMTP_SERVER", "smtp.override.org")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SENDER_EMAIL", "env@example.com")
	t.Setenv("SENDER_PASSWORD", "hunter2")
	t.Setenv("RECIPIENT_EMAIL", "env-to@example.com")
	t.Setenv("GIST_ID", "abc123")
	t.Setenv("GIST_TOKEN", "tok")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Email.SMTPHost != "smtp.override.org" {
		t.Errorf("SMTPHost = %q", cfg.Email.SMTPHost)
	}
	if cfg.Email.SMTPPort != 465 {
		t.Errorf("SMTPPort = %d", cfg.Email.SMTPPort)
	}
	if cfg.Email.From != "env@example.com" || cfg.Email.Username != "env@example.com" {
		t.Errorf("From/Username = %q/%q", cfg.Email.From, cfg.Email.Username)
	}
	if cfg.Email.To != "env-to@example.com" {
		t.Errorf("To = %q", cfg.Email.To)
	}
	if cfg.Store.Gist.ID != "abc123" || cfg.Store.Gist.Token != "tok" {
		t.Errorf("gist = %+v", cfg.Store.Gist)
	}
}

func TestLoad_MissingRequiredEmailConfigFails(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
[email]
enabled = true
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected a validation error for missing from/to")
	}
	if !strings.Contains(err.Error(), "from/to") {
		t.Errorf("error = %v, want it to name the missing addresses", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Monitor.Tickers = DefaultTickers
		cfg.Monitor.DropThresholdPercent = 2.0
		cfg.Monitor.LookbackDays = 30
		cfg.Monitor.SuppressionWindowDays = 1
		cfg.Store.Backend = "memory"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no tickers", func(c *Config) { c.Monitor.Tickers = nil }, true},
		{"empty symbol", func(c *Config) { c.Monitor.Tickers = []TickerConfig{{Name: "x"}} }, true},
		{"zero threshold", func(c *Config) { c.Monitor.DropThresholdPercent = 0 }, true},
		{"threshold too large", func(c *Config) { c.Monitor.DropThresholdPercent = 100 }, true},
		{"zero lookback", func(c *Config) { c.Monitor.LookbackDays = 0 }, true},
		{"negative window", func(c *Config) { c.Monitor.SuppressionWindowDays = -1 }, true},
		{"zero window allowed", func(c *Config) { c.Monitor.SuppressionWindowDays = 0 }, false},
		{"bad backend", func(c *Config) { c.Store.Backend = "redis" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

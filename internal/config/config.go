// Package config provides configuration management for the asset monitor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Monitor MonitorConfig `mapstructure:"monitor"`
	Email   EmailConfig   `mapstructure:"email"`
	Store   StoreConfig   `mapstructure:"store"`
}

// MonitorConfig holds the alerting rule configuration.
type MonitorConfig struct {
	Tickers               []TickerConfig `mapstructure:"tickers"`
	DropThresholdPercent  float64        `mapstructure:"drop_threshold_percent"`
	LookbackDays          int            `mapstructure:"lookback_days"`
	SuppressionWindowDays int            `mapstructure:"suppression_window_days"`
}

// TickerConfig identifies one tracked asset.
type TickerConfig struct {
	Symbol string `mapstructure:"symbol"`
	Name   string `mapstructure:"name"`
}

// EmailConfig holds SMTP notification configuration.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// StoreConfig holds persistent state configuration.
type StoreConfig struct {
	Backend    string     `mapstructure:"backend"` // "gist", "sqlite", "memory"
	SQLitePath string     `mapstructure:"sqlite_path"`
	Gist       GistConfig `mapstructure:"gist"`
}

// GistConfig holds GitHub Gist store credentials.
type GistConfig struct {
	ID    string `mapstructure:"id"`
	Token string `mapstructure:"token"`
}

// DefaultTickers are the assets tracked when none are configured.
var DefaultTickers = []TickerConfig{
	{Symbol: "GLD", Name: "Gold"},
	{Symbol: "SLV", Name: "Silver"},
	{Symbol: "COPX", Name: "Copper (Global X)"},
	{Symbol: "ICOP", Name: "Copper (iShares)"},
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/asset-monitor"
	}
	return filepath.Join(home, ".config", "asset-monitor")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("monitor.drop_threshold_percent", 2.0)
	v.SetDefault("monitor.lookback_days", 30)
	v.SetDefault("monitor.suppression_window_days", 1)
	v.SetDefault("email.enabled", true)
	v.SetDefault("email.smtp_host", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("store.backend", "gist")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: drop a template and carry on with defaults plus
			// environment overrides, so scheduled env-only runs still work.
			if terr := createTemplateConfig(configDir); terr != nil {
				return terr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config) {
	if len(cfg.Monitor.Tickers) == 0 {
		cfg.Monitor.Tickers = DefaultTickers
	}
	if cfg.Monitor.DropThresholdPercent == 0 {
		cfg.Monitor.DropThresholdPercent = 2.0
	}
	if cfg.Monitor.LookbackDays == 0 {
		cfg.Monitor.LookbackDays = 30
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "gist"
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = filepath.Join(DefaultConfigDir(), "monitor.db")
	}
}

func applyEnvOverrides(cfg *Config) {
	// SMTP settings, named after the original cron deployment variables.
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.Email.From = v
		cfg.Email.Username = v
	}
	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("RECIPIENT_EMAIL"); v != "" {
		cfg.Email.To = v
	}

	// Gist store credentials
	if v := os.Getenv("GIST_ID"); v != "" {
		cfg.Store.Gist.ID = v
	}
	if v := os.Getenv("GIST_TOKEN"); v != "" {
		cfg.Store.Gist.Token = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Monitor.Tickers) == 0 {
		return fmt.Errorf("at least one ticker must be configured")
	}
	for _, t := range c.Monitor.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("ticker symbol must not be empty")
		}
	}
	if c.Monitor.DropThresholdPercent <= 0 || c.Monitor.DropThresholdPercent >= 100 {
		return fmt.Errorf("drop_threshold_percent must be between 0 and 100")
	}
	if c.Monitor.LookbackDays < 1 {
		return fmt.Errorf("lookback_days must be at least 1")
	}
	if c.Monitor.SuppressionWindowDays < 0 {
		return fmt.Errorf("suppression_window_days must be non-negative")
	}
	if c.Email.Enabled {
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("email enabled but smtp_host is not set")
		}
		if c.Email.From == "" || c.Email.To == "" {
			return fmt.Errorf("email enabled but from/to addresses are not set")
		}
	}
	switch c.Store.Backend {
	case "gist", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid store backend: %s (must be 'gist', 'sqlite' or 'memory')", c.Store.Backend)
	}
	return nil
}

// Package cli provides the command-line interface for the asset monitor.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"asset-monitor/internal/config"
	"asset-monitor/internal/logging"
	"asset-monitor/internal/marketdata"
	"asset-monitor/internal/notify"
	"asset-monitor/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Source   marketdata.PriceSource
	Notifier notify.Notifier
	Store    store.StateStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Source: marketdata.NewYahooSource(),
	}

	if cfg.Email.Enabled {
		app.Notifier = notify.NewEmailNotifier(cfg.Email)
	} else {
		logger.Warn().Msg("email disabled, alerts will not be sent")
		app.Notifier = notify.NewNoOpNotifier()
	}

	app.Store = newStateStore(cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "asset-monitor",
		Short: "Asset price monitor - alerts on drops from recent highs",
		Long: `Asset price monitor tracks a small set of exchange-traded funds,
compares each latest close to its trailing 30-day high and emails an alert
when the drop exceeds the configured threshold. Alert state persists across
runs to suppress repeats, and every run appends a summary to a remote log.

Designed to be invoked on a schedule; one invocation performs one pass.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/asset-monitor)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newStateCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newStateStore selects the persistence backend. Missing credentials or an
// unusable database degrade to in-memory state with a warning, the run
// itself still proceeds.
func newStateStore(cfg *config.Config, logger zerolog.Logger) store.StateStore {
	switch cfg.Store.Backend {
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite store unavailable, state will not persist")
			return store.NewMemoryStore()
		}
		return st
	case "gist":
		if cfg.Store.Gist.ID == "" || cfg.Store.Gist.Token == "" {
			logger.Warn().Msg("gist id or token not set, state will not persist")
			return store.NewMemoryStore()
		}
		return store.NewGistStore(cfg.Store.Gist)
	default:
		return store.NewMemoryStore()
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("asset-monitor %s\n", Version)
		},
	}
}

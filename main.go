package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"asset-monitor/internal/cli"
	"asset-monitor/internal/config"
	"asset-monitor/internal/logging"
)

func main() {
	// .env for local invocation; scheduled runs supply real env vars.
	_ = godotenv.Load()

	logger := logging.NewLogger()

	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		logger.Error().Err(err).Msg("configuration error")
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// configDirFromArgs pre-scans for --config so the directory is known before
// cobra parses flags.
func configDirFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, "--config=") {
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

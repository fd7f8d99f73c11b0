package cli

import (
	"github.com/spf13/cobra"

	"asset-monitor/internal/monitor"
)

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one monitoring pass over the configured tickers",
		Long: `Run one full pass: fetch each ticker's trailing daily closes, compare
the latest close to the trailing high, email an alert when the drop meets
the threshold and no recent alert suppresses it, then persist state and
append the run log.

The command exits zero when the pass completes, regardless of individual
per-ticker fetch, send or log failures.`,
		Example: `  asset-monitor run
  asset-monitor run --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			runner := monitor.NewRunner(app.Config, app.Source, app.Notifier, app.Store, app.Logger)
			runner.SetDryRun(dryRun)
			defer app.Store.Close()

			result := runner.Run(cmd.Context())

			for _, rep := range result.Reports {
				cmd.Println(rep.Status)
			}
			cmd.Printf("\nAlert threshold: %.1f%%\n", app.Config.Monitor.DropThresholdPercent)
			cmd.Printf("Alerts sent: %d\n", result.AlertsSent)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "evaluate and log without sending email or persisting state")

	return cmd
}

package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"asset-monitor/pkg/utils"
)

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show persisted alert state",
		Long:  "Show the last alert recorded for each ticker, as read from the configured store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.Store.Close()

			state, err := app.Store.LoadState(cmd.Context())
			if err != nil {
				return err
			}

			if len(state) == 0 {
				cmd.Println("no alerts recorded")
				return nil
			}

			symbols := make([]string, 0, len(state))
			for sym := range state {
				symbols = append(symbols, sym)
			}
			sort.Strings(symbols)

			for _, sym := range symbols {
				st := state[sym]
				cmd.Printf("%s: last alert %s at %s\n", sym, st.LastAlertDate, utils.FormatUSD(st.LastAlertPrice))
			}
			return nil
		},
	}
}

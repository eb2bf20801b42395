package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func balanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the balances of all accounts",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			balances, err := a.api.FetchBalances(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch balances. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch account balances")
				return
			}
			if len(balances) == 0 {
				cmd.Println("No accounts found.")
				return
			}

			table := newTable([]string{"Account", "Number", "Currency", "Available", "Current"})
			for _, b := range balances {
				table.Append([]string{
					b.AccountName,
					b.AccountNumber,
					b.CurrencyCode,
					formatAmount(b.AvailableBalance),
					formatAmount(b.CurrentBalance),
				})
			}
			table.Render()
		},
	}
}

package cmd

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bizcurrency/bizcli/client"
	"github.com/bizcurrency/bizcli/pkg/operations"
	"github.com/bizcurrency/bizcli/pkg/validation"
)

func statementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Work with account statements",
	}

	cmd.AddCommand(
		statementShowCmd(a),
		statementExportCmd(a),
	)

	return cmd
}

func statementShowCmd(a *app) *cobra.Command {
	var accountID, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the statement of one account",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("account", accountID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			from, to, err := parseDateRange(fromFlag, toFlag)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			entries, err := a.api.FetchStatement(cmd.Context(), accountID, from, to)
			if err != nil {
				cmd.PrintErrln("Error: Unable to fetch the statement. Please check the logs for details.")
				log.Error().Err(err).Str("account_id", accountID).Msg("Failed to fetch statement")
				return
			}
			if len(entries) == 0 {
				cmd.Println("No transactions in the selected period.")
				return
			}

			table := newTable([]string{"Booked", "Description", "Reference", "Amount", "Currency", "Balance"})
			for _, e := range entries {
				table.Append([]string{
					e.BookingDate,
					e.Description,
					e.Reference,
					formatAmount(e.Amount),
					e.CurrencyCode,
					formatAmount(e.Balance),
				})
			}
			table.Render()
		},
	}

	cmd.Flags().StringVarP(&accountID, "account", "a", "", "Account ID to show the statement for")
	addDateRangeFlags(cmd, &fromFlag, &toFlag)

	return cmd
}

func statementExportCmd(a *app) *cobra.Command {
	var (
		accountsFlag     string
		fromFlag, toFlag string
		outputDir        string
		checksumAlgo     string
		workers          int
		rateLimitKB      int64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export account statements to CSV files",
		Long:  "Export the statements of one or more accounts to CSV files, optionally with checksum sidecar files",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			from, to, err := parseDateRange(fromFlag, toFlag)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			if rateLimitKB > 0 {
				client.SetGlobalTransferRateLimit(rateLimitKB * 1024)
				defer client.SetGlobalTransferRateLimit(0)
			}

			accountIDs, err := resolveAccounts(cmd, a, accountsFlag)
			if err != nil {
				return
			}

			results, err := operations.ExportStatements(cmd.Context(), a.api, operations.ExportParams{
				AccountIDs:   accountIDs,
				From:         from,
				To:           to,
				OutputDir:    outputDir,
				ChecksumAlgo: checksumAlgo,
				Workers:      workers,
				ShowProgress: true,
			})
			for _, r := range results {
				cmd.Printf("Exported %d entries for account %s to %s\n", r.Entries, r.AccountID, r.Path)
			}
			if err != nil {
				cmd.PrintErrln("Error: Some statements could not be exported. Please check the logs for details.")
				log.Error().Err(err).Msg("Statement export finished with errors")
			}
		},
	}

	cmd.Flags().StringVarP(&accountsFlag, "accounts", "a", "", "Comma-separated account IDs to export (default: all accounts)")
	addDateRangeFlags(cmd, &fromFlag, &toFlag)
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the CSV files to")
	cmd.Flags().StringVar(&checksumAlgo, "checksum", "", "Write a checksum sidecar per file [sha256, sha512]")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of accounts to export in parallel")
	cmd.Flags().Int64Var(&rateLimitKB, "rate-limit", 0, "Cap response transfer rate in KB/s (0 for unlimited)")

	return cmd
}

// resolveAccounts expands the --accounts flag, falling back to every account
// visible to the user.
func resolveAccounts(cmd *cobra.Command, a *app, flag string) ([]string, error) {
	if flag != "" {
		var ids []string
		for _, id := range strings.Split(flag, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	balances, err := a.api.FetchBalances(cmd.Context())
	if err != nil {
		cmd.PrintErrln("Error: Unable to list accounts. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch accounts for export")
		return nil, err
	}
	ids := make([]string, 0, len(balances))
	for _, b := range balances {
		ids = append(ids, b.AccountID)
	}
	return ids, nil
}

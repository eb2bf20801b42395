package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/bizcurrency/bizcli/pkg/clierr"
	"github.com/bizcurrency/bizcli/pkg/validation"
)

// requireSession fails fast when no user is logged in, before any command
// touches the network.
func requireSession(a *app) error {
	if !a.session.Current().Authenticated() {
		return clierr.New(clierr.Auth, "not logged in; run `bizcli login` first", nil)
	}
	return nil
}

// newTable creates a tablewriter with the shared appearance settings.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// parseDateRange turns the --from/--to flag values into a validated range.
// An empty from defaults to 30 days ago, an empty to defaults to today.
func parseDateRange(fromFlag, toFlag string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromFlag != "" {
		if from, err = validation.ParseDate("from", fromFlag); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toFlag != "" {
		if to, err = validation.ParseDate("to", toFlag); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if err := validation.ValidateDateRange(from, to); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// addDateRangeFlags registers the --from/--to flags shared by the search
// style commands.
func addDateRangeFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "Start date in YYYY-MM-DD format (default: 30 days ago)")
	cmd.Flags().StringVar(to, "to", "", "End date in YYYY-MM-DD format (default: today)")
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

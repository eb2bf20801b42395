package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Run: func(cmd *cobra.Command, args []string) {
			snap := a.session.Current()
			if !snap.Authenticated() {
				cmd.Println("Not logged in.")
				return
			}

			identity := snap.Identity
			table := newTable([]string{"Field", "Value"})
			table.Append([]string{"User", identity.UserName})
			table.Append([]string{"Name", identity.FirstName + " " + identity.LastName})
			table.Append([]string{"Email", identity.Email})
			table.Append([]string{"Organization", identity.OrganizationName})
			table.Append([]string{"Branch", identity.BranchName})
			table.Append([]string{"Base currency", identity.BaseCurrency})
			table.Append([]string{"Token expires", snap.Tokens.ExpiresAt.Local().Format(time.RFC1123)})
			table.Render()
		},
	}
}

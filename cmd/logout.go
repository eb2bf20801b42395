package cmd

import (
	"github.com/spf13/cobra"
)

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and forget the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			if !a.session.Current().Authenticated() {
				cmd.Println("Not logged in.")
				return
			}
			a.session.Logout()
			cmd.Println("Logged out.")
		},
	}
}

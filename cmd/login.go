package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bizcurrency/bizcli/auth"
)

// loginCmd creates a new cobra.Command for logging into the bizcurrency API.
func loginCmd(a *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to bizcurrency",
		Long:  "Login to bizcurrency using your username and password",
		Run: func(cmd *cobra.Command, args []string) {
			if username == "" {
				username = promptForInput("Username: ")
			}
			password := promptForPassword("Password: ")

			if !validateCredentials(username, password) {
				cmd.PrintErrln("Error: Username and password cannot be empty.")
				return
			}

			identity, err := a.session.Login(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, auth.ErrAuthenticationFailed) {
					cmd.PrintErrln("Error: Invalid username or password.")
				} else {
					cmd.PrintErrln("Error: Failed to login. Please check the logs for details.")
				}
				log.Error().Err(err).Msg("Login failed")
				return
			}

			cmd.Printf("Welcome, %s %s (%s).\n", identity.FirstName, identity.LastName, identity.OrganizationName)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to login with (prompted when omitted)")

	return cmd
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the
// trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println()
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the username and password are not empty.
func validateCredentials(username, password string) bool {
	return username != "" && password != ""
}

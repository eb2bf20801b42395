package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bizcurrency/bizcli/auth"
	"github.com/bizcurrency/bizcli/client"
	"github.com/bizcurrency/bizcli/db"
)

// app bundles the long-lived pieces shared by all commands: the session that
// owns the tokens and the API client bound to it.
type app struct {
	cfg     client.Config
	session *auth.Session
	api     *client.Client
}

func Execute() {
	initializeDatabase()
	defer closeDatabase()

	a := newApp()
	watchdog := auth.NewWatchdog(a.session, auth.DefaultWatchdogInterval, auth.DefaultRefreshBuffer)
	defer watchdog.Close()

	rootCmd := createRootCmd(a)
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func newApp() *app {
	cfg := client.ConfigFromEnv()
	store := db.NewStore(db.NewCredentialRepository(db.Db))
	authClient := client.NewAuthClient(cfg)
	session := auth.NewSession(store, authClient, authClient)
	session.Initialize(context.Background())

	api := client.New(cfg, session, func() {
		fmt.Fprintln(os.Stderr, "Session expired. Please run `bizcli login` to re-authenticate.")
	})

	return &app{cfg: cfg, session: session, api: api}
}

func createRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizcli",
		Short: "A CLI for bizcurrency business banking",
	}

	rootCmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		balanceCmd(a),
		statementCmd(a),
		paymentCmd(a),
		fxCmd(a),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func initializeDatabase() {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}

package main

import (
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bizcurrency/bizcli/cmd"
)

// main sets up logging based on the DEBUG_BIZCLI environment variable,
// starts a goroutine to listen for interrupt signals, and executes the
// root command.
func main() {
	configureLogLevelFromEnv()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	cmd.Execute()
}

// configureLogLevelFromEnv enables debug logging when DEBUG_BIZCLI is set
// and silences logging otherwise.
func configureLogLevelFromEnv() {
	if os.Getenv("DEBUG_BIZCLI") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}

// listenForInterrupt exits the program when an interrupt signal is received.
func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("Interrupt signal received. Exiting...")
}

// main.go
//
// Entry point for the mastermind binary.
// Running it with no subcommand starts the HTTP server, as `mastermind serve`
// does; the other subcommands are offline solver tools.

package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("mastermind")
		os.Exit(1)
	}
}

// commands.go
//
// Cobra command tree.
//   - serve                       HTTP server (default)
//   - play [COLORS LENGTH]        interactive solver session on stdin/stdout
//   - solve COLORS SECRET         automatic play against a known secret
//   - partitions N K              partitions of N into at most K parts
//   - candidates COLORS LENGTH    enumerate the universe
//   - classes COLORS GUESS [SEQ]  color classes induced by a guess and a representative
//   - evaluate COLORS SECRET GUESS
//   - entropy COLORS GUESS        expected information of GUESS at the start

package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/config"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "mastermind",
		Short:         "Mastermind code-breaking assistant and game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				With().Timestamp().Logger()
			if logLevel == "" {
				logLevel = config.GetEnv("LOG_LEVEL", "info")
			}
			lvl, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "zerolog level (default $LOG_LEVEL or info)")

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(
		serve,
		newPlayCmd(),
		newSolveCmd(),
		newPartitionsCmd(),
		newCandidatesCmd(),
		newClassesCmd(),
		newEvaluateCmd(),
		newEntropyCmd(),
	)
	return root
}

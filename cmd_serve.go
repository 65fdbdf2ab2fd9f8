// cmd_serve.go
//
// `mastermind serve`: load configuration, open and migrate the database,
// load presets and start the HTTP server.

package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/db"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/presets"
	"github.com/robalobadob/mastermind/internal/store"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}

			if err := presets.Init(cfg.PresetsFile); err != nil {
				return err
			}
			conn, err := db.OpenAndMigrate(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			srv := httpserver.New(cfg, store.NewMemoryStore(), conn)
			go srv.RunJanitor(cmd.Context(), time.Minute)
			log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Int("presets", len(presets.All())).
				Msg("starting mastermind server")
			return srv.Start(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 5175)")
	return cmd
}

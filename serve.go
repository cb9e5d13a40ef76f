package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Aceluke24/BDR-dice-roller/internal/config"
	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
	"github.com/Aceluke24/BDR-dice-roller/internal/httpserver"
	"github.com/Aceluke24/BDR-dice-roller/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web game (default command)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel, cfg.Production)

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		srv, err := httpserver.New(cfg, st, dice.New(dice.CryptoSource{}))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		janitor := store.StartJanitor(ctx, st, cfg.SessionTTL, janitorInterval(cfg.SessionTTL))

		log.Info().Str("port", cfg.Port).Str("store", cfg.SessionStore).Msg("starting dice server")
		err = srv.Run(ctx, cfg.Addr())
		stop()
		<-janitor
		if err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openStore builds the configured session store.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.SessionStore {
	case config.StoreSQLite:
		st, err := store.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, nil
	default:
		return store.NewMemoryStore(), nil
	}
}

// janitorInterval sweeps a few times per TTL, but not more than once a minute.
func janitorInterval(ttl time.Duration) time.Duration {
	iv := ttl / 4
	if iv < time.Minute {
		iv = time.Minute
	}
	return iv
}

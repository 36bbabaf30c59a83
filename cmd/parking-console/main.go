// Command parking-console runs the local web console for the parking
// reservation service: a thin guarded shell that talks to the remote API on
// the operator's behalf and exposes client metrics.
package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/parkwise/parking-client/internal/console"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
	"github.com/parkwise/parking-client/internal/infrastructure/api"
	"github.com/parkwise/parking-client/internal/infrastructure/config"
	"github.com/parkwise/parking-client/internal/infrastructure/store"
	"github.com/parkwise/parking-client/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	backing, err := buildStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("credential store init failed")
	}

	session := service.NewSession(backing, log)
	session.Subscribe(func(state ports.SessionState) {
		log.Info().Bool("authenticated", state.Authenticated).Str("role", state.Role).Msg("session changed")
	})

	dispatcher := api.NewDispatcher(api.DispatcherConfig{
		BaseURL:     cfg.APIBaseURL,
		Credentials: session,
		Timeout:     cfg.RequestTimeout,
		Logger:      log,
		OnSessionEnd: func() {
			log.Warn().Msg("session ended, re-authentication required")
		},
	})
	client := api.NewClient(dispatcher, session, log)

	e := console.NewRouter(session, console.APIs{
		Auth:    client,
		Booking: client,
		Profile: client,
		Export:  client,
		Admin:   client,
		Public:  client,
	}, log)

	log.Info().Str("addr", cfg.Console.Addr).Str("api", cfg.APIBaseURL).Msg("console listening")
	if err := e.Start(cfg.Console.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func buildStore(cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, error) {
	switch cfg.Store.Backend {
	case "redis":
		client, err := store.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis credential store")
		return store.NewRedis(client), nil
	default:
		return store.NewFile(cfg.Store.Path, cfg.Store.Passphrase), nil
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/atmbank/atm-client/internal/cli"
	"github.com/atmbank/atm-client/internal/core/ports"
	"github.com/atmbank/atm-client/internal/core/service"
	"github.com/atmbank/atm-client/internal/infrastructure/bankapi"
	"github.com/atmbank/atm-client/internal/infrastructure/config"
	"github.com/atmbank/atm-client/internal/infrastructure/store"
	"github.com/atmbank/atm-client/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := buildKV(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise session storage")
	}

	sessions := store.NewSessionStore(kv, log)
	bank := bankapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	term := cli.NewTerminal(os.Stdout)
	svc := service.NewATMService(bank, sessions, term, log)

	log.Info().Str("api", cfg.API.BaseURL).Str("session_backend", cfg.Session.Backend).Msg("atm client starting")

	svc.Resume(ctx)
	cli.NewDispatcher(svc, term).Loop(ctx, os.Stdin)
}

// buildKV selects the session persistence backend from configuration.
func buildKV(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.KeyValue, error) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := store.ConnectRedis(ctx, store.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return store.NewRedisKV(client, cfg.Redis.TTL), nil
	default:
		path := cfg.Session.Path
		if !filepath.IsAbs(path) {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(home, path)
		}
		log.Debug().Str("path", path).Msg("using file session store")
		return store.NewFileKV(path), nil
	}
}

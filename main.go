package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"simplechat/internal/config"
	"simplechat/internal/tg"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(level)

	svc, err := tg.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create telegram service")
	}

	log.Info().Str("backend", cfg.Backend).Str("provider", cfg.Provider).Msg("starting simplechat")
	svc.Run(ctx)
	log.Info().Msg("simplechat stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"ratedeck/internal/config"
	"ratedeck/internal/library"
	"ratedeck/internal/platform/logging"
	"ratedeck/internal/store"
)

func main() {
	cfg, err := config.Load("config/local.env")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.SetGlobal(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", string(cfg.Store.Backend)).Msg("open store")
	}
	defer closeBackend()

	lib := library.New(store.New(backend, logger), logger)
	if err := lib.Open(ctx); err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}

	if cfg.SeedDemoData {
		if err := bootstrapDemoData(ctx, lib); err != nil {
			logger.Fatal().Err(err).Msg("seed demo data")
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHTTPHandler(cfg, lib, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"ratedeck/internal/config"
	"ratedeck/internal/store"
)

// openBackend returns the configured blob backend and a func that releases it.
func openBackend(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (store.Backend, func(), error) {
	switch cfg.Backend {
	case config.StorePostgres:
		db, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("catalog stored in postgres")
		return store.NewPostgres(db), func() { _ = db.Close() }, nil
	case config.StoreBadger:
		db, err := store.OpenBadger(cfg.BadgerDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("dir", cfg.BadgerDir).Msg("catalog stored in badger")
		return store.NewBadger(db), func() {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("close badger")
			}
		}, nil
	case config.StoreMemory:
		logger.Warn().Msg("catalog stored in memory; data is lost on exit")
		return store.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres keeps catalog values in the catalog_blobs table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres sets up a backend using the provided database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Get returns the value stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT value
		FROM catalog_blobs
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select blob: %w", err)
	}
	return value, true, nil
}

// Put upserts all entries in one transaction.
func (p *Postgres) Put(ctx context.Context, entries ...Entry) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_blobs (key, value, updated_at)
			VALUES ($1, $2::jsonb, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`, e.Key, string(e.Value)); err != nil {
			return fmt.Errorf("upsert %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// Delete removes keys in one transaction. Missing keys are ignored.
func (p *Postgres) Delete(ctx context.Context, keys ...string) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM catalog_blobs
			WHERE key = $1
		`, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

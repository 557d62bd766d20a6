// Package store persists the catalog as independent JSON values in a
// key-value backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"ratedeck/internal/catalog"
	"ratedeck/internal/metrics"
)

// Fixed keys of the catalog values.
const (
	KeySongs   = "songs"
	KeyAlbums  = "albums"
	KeyArtists = "artists"
	KeyUser    = "user"
	KeySchema  = "schema"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("store closed")

// Entry is one key and its encoded value.
type Entry struct {
	Key   string
	Value []byte
}

// Backend is a flat key-value space. Put should apply all entries together
// when the backend supports it; callers do not rely on it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, keys ...string) error
}

// Store reads and writes catalog snapshots.
type Store struct {
	backend Backend
	logger  zerolog.Logger
}

// New wraps backend.
func New(backend Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.With().Str("component", "store").Logger(),
	}
}

// Load reads every key. Missing values and values that fail to decode are
// replaced by their defaults, so Load only fails when the backend does. Data
// written by an older schema is upgraded in memory.
func (s *Store) Load(ctx context.Context) (snap catalog.Snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load", time.Since(start), err) }()

	if err := s.decode(ctx, KeySongs, &snap.Songs); err != nil {
		return catalog.Snapshot{}, err
	}
	if err := s.decode(ctx, KeyAlbums, &snap.Albums); err != nil {
		return catalog.Snapshot{}, err
	}
	if err := s.decode(ctx, KeyArtists, &snap.Artists); err != nil {
		return catalog.Snapshot{}, err
	}
	if err := s.decode(ctx, KeyUser, &snap.User); err != nil {
		return catalog.Snapshot{}, err
	}

	var version int
	if err := s.decode(ctx, KeySchema, &version); err != nil {
		return catalog.Snapshot{}, err
	}
	if version < catalog.SchemaVersion {
		s.logger.Info().
			Int("from", version).
			Int("to", catalog.SchemaVersion).
			Msg("upgrading stored catalog")
	}

	return catalog.Upgrade(snap, version), nil
}

// decode reads key into dst. dst is left at its zero value when the key is
// absent or holds something that does not decode.
func (s *Store) decode(ctx context.Context, key string, dst any) error {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed stored value")
		metrics.RecordDecodeFailure(key)
		resetValue(dst)
	}
	return nil
}

func resetValue(dst any) {
	switch v := dst.(type) {
	case *[]catalog.Song:
		*v = nil
	case *[]catalog.Album:
		*v = nil
	case *[]catalog.Artist:
		*v = nil
	case **catalog.User:
		*v = nil
	case *int:
		*v = 0
	}
}

// Save writes the whole snapshot, stamped with the current schema version.
func (s *Store) Save(ctx context.Context, snap catalog.Snapshot) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("save", time.Since(start), err) }()

	snap = catalog.Normalize(snap)
	values := []struct {
		key   string
		value any
	}{
		{KeySongs, snap.Songs},
		{KeyAlbums, snap.Albums},
		{KeyArtists, snap.Artists},
		{KeyUser, snap.User},
		{KeySchema, catalog.SchemaVersion},
	}

	entries := make([]Entry, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", v.key, err)
		}
		entries = append(entries, Entry{Key: v.key, Value: raw})
	}

	if err := s.backend.Put(ctx, entries...); err != nil {
		return fmt.Errorf("put catalog: %w", err)
	}
	return nil
}

// Clear removes the songs, albums and artists. The signed-in user is kept.
func (s *Store) Clear(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("clear", time.Since(start), err) }()

	if err := s.backend.Delete(ctx, KeySongs, KeyAlbums, KeyArtists); err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	return nil
}

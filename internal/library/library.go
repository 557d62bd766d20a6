// Package library owns the live catalog of one running session: it loads the
// snapshot from the store, applies mutations one at a time and persists each
// result before making it visible.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ratedeck/internal/catalog"
	"ratedeck/internal/metrics"
)

var (
	// ErrNotSignedIn is returned by operations that need a current user.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidCredentials indicates a sign-in with a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ratedeck/users"))
)

// Store persists snapshots.
type Store interface {
	Load(ctx context.Context) (catalog.Snapshot, error)
	Save(ctx context.Context, snap catalog.Snapshot) error
	Clear(ctx context.Context) error
}

// Option configures a Library.
type Option func(*Library)

// WithIDGenerator replaces the record id source.
func WithIDGenerator(gen catalog.IDGenerator) Option {
	return func(l *Library) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// WithBcryptCost sets the cost used to hash sign-in passwords.
func WithBcryptCost(cost int) Option {
	return func(l *Library) {
		l.bcryptCost = cost
	}
}

// Library is the session-owned catalog state.
type Library struct {
	store      Store
	logger     zerolog.Logger
	newID      catalog.IDGenerator
	bcryptCost int

	mu   sync.RWMutex
	snap catalog.Snapshot
}

// New builds a Library over store. Call Open before serving reads.
func New(store Store, logger zerolog.Logger, opts ...Option) *Library {
	l := &Library{
		store:      store,
		logger:     logger.With().Str("component", "library").Logger(),
		newID:      catalog.NewID,
		bcryptCost: bcrypt.DefaultCost,
		snap:       catalog.Normalize(catalog.Snapshot{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open loads the persisted catalog.
func (l *Library) Open(ctx context.Context) error {
	snap, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	publishSize(snap)
	l.logger.Info().
		Int("songs", len(snap.Songs)).
		Int("albums", len(snap.Albums)).
		Int("artists", len(snap.Artists)).
		Msg("catalog loaded")
	return nil
}

// Snapshot returns the current catalog. The snapshot is shared and must be
// treated as read-only.
func (l *Library) Snapshot() catalog.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// SubmitSong resolves, checks and applies a song submission.
func (l *Library) SubmitSong(ctx context.Context, form catalog.SongForm) (catalog.Song, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	form = catalog.ResolveForm(form, l.snap.Albums, l.snap.Artists)
	if err := catalog.CheckSubmission(form, l.snap); err != nil {
		switch {
		case errors.Is(err, catalog.ErrDuplicateSubmission):
			metrics.RecordSubmission("duplicate")
		default:
			metrics.RecordSubmission("invalid")
		}
		return catalog.Song{}, err
	}

	next, song := catalog.SubmitSong(form, l.snap, l.newID)
	if err := l.commit(ctx, next); err != nil {
		metrics.RecordSubmission("error")
		return catalog.Song{}, err
	}

	metrics.RecordSubmission("accepted")
	l.logger.Info().
		Str("song_id", song.ID).
		Str("artist_id", song.ArtistID).
		Str("album_id", song.AlbumID).
		Msg("song submitted")
	return song, nil
}

// RateSong records the current user's rating for songID, replacing any
// earlier rating by that user.
func (l *Library) RateSong(ctx context.Context, songID string, rating int) (catalog.Song, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snap.User == nil {
		return catalog.Song{}, ErrNotSignedIn
	}

	songs, err := catalog.RateSong(l.snap.Songs, songID, l.snap.User.ID, rating)
	if err != nil {
		return catalog.Song{}, err
	}

	next := l.snap
	next.Songs = songs
	if err := l.commit(ctx, next); err != nil {
		return catalog.Song{}, err
	}

	metrics.RecordRating()
	song, _ := catalog.FindSong(songs, songID)
	return song, nil
}

// SignIn makes the user with email the current user, creating it on first
// use. Signing in again as the current user checks the password.
func (l *Library) SignIn(ctx context.Context, email, password string) (catalog.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return catalog.User{}, ErrInvalidCredentials
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if u := l.snap.User; u != nil && strings.EqualFold(u.Email, email) && u.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return catalog.User{}, ErrInvalidCredentials
		}
		return *u, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.bcryptCost)
	if err != nil {
		return catalog.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := catalog.User{
		ID:           UserID(email),
		Name:         displayName(email),
		Email:        email,
		PasswordHash: string(hash),
	}

	next := l.snap
	next.User = &user
	if err := l.commit(ctx, next); err != nil {
		return catalog.User{}, err
	}

	l.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return user, nil
}

// SignOut clears the current user. It is a no-op when nobody is signed in.
func (l *Library) SignOut(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snap.User == nil {
		return nil
	}

	next := l.snap
	next.User = nil
	return l.commit(ctx, next)
}

// Session returns the current catalog together with the signed-in user, read
// under one lock so the two always belong together.
func (l *Library) Session() (catalog.Snapshot, catalog.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.snap.User == nil {
		return l.snap, catalog.User{}, false
	}
	return l.snap, *l.snap.User, true
}

// CurrentUser returns the signed-in user, if any.
func (l *Library) CurrentUser() (catalog.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.snap.User == nil {
		return catalog.User{}, false
	}
	return *l.snap.User, true
}

// Reset wipes songs, albums and artists. The current user stays signed in.
func (l *Library) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	l.snap = catalog.Normalize(catalog.Snapshot{User: l.snap.User})
	publishSize(l.snap)
	l.logger.Warn().Msg("catalog wiped")
	return nil
}

// UserID derives the stable id of the user with email.
func UserID(email string) string {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(strings.TrimSpace(email)))).String()
}

// commit persists next and makes it current. l.mu must be held.
func (l *Library) commit(ctx context.Context, next catalog.Snapshot) error {
	if err := l.store.Save(ctx, next); err != nil {
		l.logger.Error().Err(err).Msg("save catalog")
		return fmt.Errorf("save catalog: %w", err)
	}
	l.snap = next
	publishSize(next)
	return nil
}

func publishSize(snap catalog.Snapshot) {
	metrics.SetCatalogSize(len(snap.Songs), len(snap.Albums), len(snap.Artists))
}

func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}

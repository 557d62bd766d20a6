package ratings

import (
	"context"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

// Library defines the rating hooks of the catalog state.
type Library interface {
	Session() (catalog.Snapshot, catalog.User, bool)
	RateSong(ctx context.Context, songID string, rating int) (catalog.Song, error)
}

// Service coordinates rating updates and queries.
type Service interface {
	Rate(ctx context.Context, songID string, rating int) (catalog.SongView, error)
	Mine(ctx context.Context, query, sort string) ([]catalog.SongView, error)
}

type service struct {
	library Library
}

// New constructs a ratings Service backed by the given library.
func New(library Library) Service {
	return &service{library: library}
}

func (s *service) Rate(ctx context.Context, songID string, rating int) (catalog.SongView, error) {
	if err := ctx.Err(); err != nil {
		return catalog.SongView{}, err
	}

	song, err := s.library.RateSong(ctx, songID, rating)
	if err != nil {
		return catalog.SongView{}, err
	}
	return catalog.ViewSong(song, library.ViewerFrom(ctx)), nil
}

// Mine lists the songs the current user has rated. Sorting by rating uses
// the user's own score.
func (s *service) Mine(ctx context.Context, query, sort string) ([]catalog.SongView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, user, ok := s.library.Session()
	if !ok {
		return nil, library.ErrNotSignedIn
	}

	opt, err := catalog.ParseSort(sort, catalog.SongSorts...)
	if err != nil {
		return nil, err
	}

	rated, err := catalog.UserRatings(snap.Songs, user.ID, query, opt)
	if err != nil {
		return nil, err
	}
	return catalog.ViewSongs(rated, user.ID), nil
}

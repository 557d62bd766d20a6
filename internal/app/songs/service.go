package songs

import (
	"context"
	"slices"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

// Library exposes the catalog state the song workflows need.
type Library interface {
	Snapshot() catalog.Snapshot
	SubmitSong(ctx context.Context, form catalog.SongForm) (catalog.Song, error)
}

// Service exposes song-centric operations.
type Service interface {
	List(ctx context.Context, query, sort string) ([]catalog.SongView, error)
	Search(ctx context.Context, query string) ([]catalog.SongView, error)
	Get(ctx context.Context, id string) (catalog.SongDetail, error)
	Submit(ctx context.Context, form catalog.SongForm) (catalog.SongView, error)
	Suggestions(ctx context.Context, field, text string) ([]string, error)
	Genres(ctx context.Context) ([]string, error)
}

type service struct {
	library Library
}

// New constructs a song Service backed by the provided library.
func New(library Library) Service {
	return &service{library: library}
}

func (s *service) List(ctx context.Context, query, sort string) ([]catalog.SongView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt, err := catalog.ParseSort(sort, catalog.SongSorts...)
	if err != nil {
		return nil, err
	}

	snap := s.library.Snapshot()
	sorted, err := catalog.SortSongs(catalog.FilterSongs(snap.Songs, query), opt)
	if err != nil {
		return nil, err
	}
	return catalog.ViewSongs(sorted, library.ViewerFrom(ctx)), nil
}

func (s *service) Search(ctx context.Context, query string) ([]catalog.SongView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.library.Snapshot()
	return catalog.ViewSongs(catalog.SearchSongs(snap.Songs, query), library.ViewerFrom(ctx)), nil
}

func (s *service) Get(ctx context.Context, id string) (catalog.SongDetail, error) {
	if err := ctx.Err(); err != nil {
		return catalog.SongDetail{}, err
	}
	return catalog.DescribeSong(s.library.Snapshot(), id, library.ViewerFrom(ctx))
}

func (s *service) Submit(ctx context.Context, form catalog.SongForm) (catalog.SongView, error) {
	if err := ctx.Err(); err != nil {
		return catalog.SongView{}, err
	}

	song, err := s.library.SubmitSong(ctx, form)
	if err != nil {
		return catalog.SongView{}, err
	}
	return catalog.ViewSong(song, library.ViewerFrom(ctx)), nil
}

func (s *service) Suggestions(ctx context.Context, field, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.Suggestions(s.library.Snapshot(), catalog.SuggestField(field), text)
}

func (s *service) Genres(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(catalog.Genres), nil
}

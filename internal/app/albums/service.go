package albums

import (
	"context"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

// Library exposes the catalog state album workflows read from.
type Library interface {
	Snapshot() catalog.Snapshot
}

// Service coordinates album-related operations.
type Service interface {
	List(ctx context.Context, query, sort string) ([]catalog.AlbumView, error)
	Get(ctx context.Context, id string) (catalog.AlbumDetail, error)
	Featured(ctx context.Context) ([]catalog.FeaturedAlbum, error)
}

type service struct {
	library Library
}

// New constructs a Service backed by the provided library.
func New(library Library) Service {
	return &service{library: library}
}

func (s *service) List(ctx context.Context, query, sort string) ([]catalog.AlbumView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt, err := catalog.ParseSort(sort, catalog.AlbumSorts...)
	if err != nil {
		return nil, err
	}

	snap := s.library.Snapshot()
	sorted, err := catalog.SortAlbums(catalog.FilterAlbums(snap.Albums, query), snap.Songs, opt)
	if err != nil {
		return nil, err
	}
	return catalog.ViewAlbums(sorted, snap.Songs), nil
}

func (s *service) Get(ctx context.Context, id string) (catalog.AlbumDetail, error) {
	if err := ctx.Err(); err != nil {
		return catalog.AlbumDetail{}, err
	}
	return catalog.DescribeAlbum(s.library.Snapshot(), id, library.ViewerFrom(ctx))
}

func (s *service) Featured(ctx context.Context) ([]catalog.FeaturedAlbum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.Featured(s.library.Snapshot(), library.ViewerFrom(ctx)), nil
}

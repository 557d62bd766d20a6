package artists

import (
	"context"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

// Library exposes the catalog state artist workflows read from.
type Library interface {
	Snapshot() catalog.Snapshot
}

// Service exposes artist lookups.
type Service interface {
	List(ctx context.Context, query, sort string) ([]catalog.ArtistView, error)
	Get(ctx context.Context, id string) (catalog.ArtistDetail, error)
}

type service struct {
	library Library
}

// New builds an artist Service.
func New(library Library) Service {
	return &service{library: library}
}

func (s *service) List(ctx context.Context, query, sort string) ([]catalog.ArtistView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt, err := catalog.ParseSort(sort, catalog.ArtistSorts...)
	if err != nil {
		return nil, err
	}

	snap := s.library.Snapshot()
	sorted, err := catalog.SortArtists(catalog.FilterArtists(snap.Artists, query), snap.Songs, opt)
	if err != nil {
		return nil, err
	}
	return catalog.ViewArtists(sorted, snap.Songs), nil
}

func (s *service) Get(ctx context.Context, id string) (catalog.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return catalog.ArtistDetail{}, err
	}
	return catalog.DescribeArtist(s.library.Snapshot(), id, library.ViewerFrom(ctx))
}

package artists

import (
	"context"
	"errors"
	"testing"

	"ratedeck/internal/catalog"
)

type stubLibrary struct {
	snap catalog.Snapshot
}

func (s stubLibrary) Snapshot() catalog.Snapshot { return s.snap }

func TestListBySongCount(t *testing.T) {
	lib := stubLibrary{snap: catalog.Snapshot{
		Songs: []catalog.Song{
			{ID: "s1", ArtistID: "x"},
			{ID: "s2", ArtistID: "y"},
			{ID: "s3", ArtistID: "y"},
		},
		Artists: []catalog.Artist{
			{ID: "x", Name: "Xeno", Songs: []string{"s1"}},
			{ID: "y", Name: "Yara", Songs: []string{"s2", "s3"}},
		},
	}}

	views, err := New(lib).List(context.Background(), "", "songCount")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 2 || views[0].ID != "y" || views[0].SongCount != 2 {
		t.Fatalf("expected artist y first with 2 songs, got %#v", views)
	}

	if _, err := New(lib).List(context.Background(), "", "releaseDate"); !errors.Is(err, catalog.ErrUnknownSort) {
		t.Fatalf("expected ErrUnknownSort, got %v", err)
	}
}

func TestGetMissingArtist(t *testing.T) {
	if _, err := New(stubLibrary{}).Get(context.Background(), "nope"); !errors.Is(err, catalog.ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}
}

package albums

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

func testLibrary() stubLibrary {
	return stubLibrary{snap: catalog.Snapshot{
		Songs: []catalog.Song{
			{ID: "s1", AlbumID: "A", Ratings: []catalog.Rating{{UserID: "u1", Rating: 8}, {UserID: "u2", Rating: 10}}},
			{ID: "s2", AlbumID: "B", Ratings: []catalog.Rating{{UserID: "u1", Rating: 5}}},
		},
		Albums: []catalog.Album{
			{ID: "B", Name: "Blue", ReleaseDate: "2020-01-01", Songs: []string{"s2"}},
			{ID: "A", Name: "Amber", ReleaseDate: "2010-01-01", Songs: []string{"s1"}},
			{ID: "E", Name: "Empty", ReleaseDate: "2015-01-01", Songs: []string{}},
		},
	}}
}

func TestListSortsByRating(t *testing.T) {
	views, err := New(testLibrary()).List(context.Background(), "", "rating")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := []string{views[0].ID, views[1].ID, views[2].ID}
	want := []string{"A", "B", "E"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if views[0].AverageRating != 9 {
		t.Fatalf("expected album A average 9, got %v", views[0].AverageRating)
	}
}

func TestListFiltersAndRejectsUnknownSort(t *testing.T) {
	svc := New(testLibrary())

	views, err := svc.List(context.Background(), "amb", "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "A" {
		t.Fatalf("expected only album A, got %#v", views)
	}

	if _, err := svc.List(context.Background(), "", "songCount"); !errors.Is(err, catalog.ErrUnknownSort) {
		t.Fatalf("expected ErrUnknownSort, got %v", err)
	}
}

func TestGetEmptyAlbum(t *testing.T) {
	detail, err := New(testLibrary()).Get(context.Background(), "E")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Album.AverageRating != 0 || len(detail.Tracks) != 0 {
		t.Fatalf("expected empty album with average 0, got %#v", detail)
	}

	if _, err := New(testLibrary()).Get(context.Background(), "missing"); !errors.Is(err, catalog.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

package main

import (
	"context"
	"fmt"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

const (
	demoEmail    = "demo@ratedeck.local"
	demoPassword = "demo123"
)

type demoSong struct {
	form   catalog.SongForm
	rating int
}

var demoSongs = []demoSong{
	{rating: 9, form: catalog.SongForm{
		Title: "Teardrop", Type: catalog.SongTypeAlbum, AlbumName: "Mezzanine", ArtistName: "Massive Attack",
		Duration: "5:29", ReleaseDate: "1998-04-20", Genre: "Electronic",
		AlbumCoverURL: "https://images.ratedeck.local/mezzanine.jpg", ArtistImageURL: "https://images.ratedeck.local/massive-attack.jpg",
	}},
	{rating: 8, form: catalog.SongForm{
		Title: "Angel", Type: catalog.SongTypeAlbum, AlbumName: "Mezzanine", ArtistName: "Massive Attack",
		Duration: "6:18", ReleaseDate: "1998-04-20", Genre: "Electronic",
		AlbumCoverURL: "https://images.ratedeck.local/mezzanine.jpg", ArtistImageURL: "https://images.ratedeck.local/massive-attack.jpg",
	}},
	{rating: 10, form: catalog.SongForm{
		Title: "Paranoid Android", Type: catalog.SongTypeAlbum, AlbumName: "OK Computer", ArtistName: "Radiohead",
		Duration: "6:23", ReleaseDate: "1997-05-21", Genre: "Alternative",
		AlbumCoverURL: "https://images.ratedeck.local/ok-computer.jpg", ArtistImageURL: "https://images.ratedeck.local/radiohead.jpg",
	}},
	{rating: 7, form: catalog.SongForm{
		Title: "Karma Police", Type: catalog.SongTypeAlbum, AlbumName: "OK Computer", ArtistName: "Radiohead",
		Duration: "4:21", ReleaseDate: "1997-05-21", Genre: "Alternative",
		AlbumCoverURL: "https://images.ratedeck.local/ok-computer.jpg", ArtistImageURL: "https://images.ratedeck.local/radiohead.jpg",
	}},
	{rating: 6, form: catalog.SongForm{
		Title: "So What", Type: catalog.SongTypeAlbum, AlbumName: "Kind of Blue", ArtistName: "Miles Davis",
		Duration: "9:22", ReleaseDate: "1959-08-17", Genre: "Jazz",
		AlbumCoverURL: "https://images.ratedeck.local/kind-of-blue.jpg", ArtistImageURL: "https://images.ratedeck.local/miles-davis.jpg",
	}},
	{form: catalog.SongForm{
		Title: "Running Up That Hill", Type: catalog.SongTypeSingle, ArtistName: "Kate Bush",
		Duration: "4:58", ReleaseDate: "1985-08-05", Genre: "Pop",
		AlbumCoverURL: "https://images.ratedeck.local/running-up-that-hill.jpg", ArtistImageURL: "https://images.ratedeck.local/kate-bush.jpg",
	}},
}

// bootstrapDemoData fills an empty catalog with sample songs. When nobody is
// signed in, a demo listener rates them and signs out again.
func bootstrapDemoData(ctx context.Context, lib *library.Library) error {
	if len(lib.Snapshot().Songs) > 0 {
		return nil
	}

	ids := make([]string, len(demoSongs))
	for i, demo := range demoSongs {
		song, err := lib.SubmitSong(ctx, demo.form)
		if err != nil {
			return fmt.Errorf("bootstrap song %q: %w", demo.form.Title, err)
		}
		ids[i] = song.ID
	}

	if _, signedIn := lib.CurrentUser(); signedIn {
		return nil
	}

	if _, err := lib.SignIn(ctx, demoEmail, demoPassword); err != nil {
		return fmt.Errorf("bootstrap demo user: %w", err)
	}
	for i, demo := range demoSongs {
		if demo.rating == 0 {
			continue
		}
		if _, err := lib.RateSong(ctx, ids[i], demo.rating); err != nil {
			return fmt.Errorf("bootstrap rating: %w", err)
		}
	}
	return lib.SignOut(ctx)
}

package catalog

import (
	"fmt"
	"slices"
	"strings"
)

func containsFold(value, query string) bool {
	return strings.Contains(strings.ToLower(value), query)
}

func matcher[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if containsFold(f, q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// FilterSongs keeps songs whose title or genre contains query, ignoring case.
// An empty query keeps everything.
func FilterSongs(songs []Song, query string) []Song {
	return matcher(songs, query, func(s Song) []string { return []string{s.Title, s.Genre} })
}

// FilterAlbums keeps albums whose name or artist name contains query.
func FilterAlbums(albums []Album, query string) []Album {
	return matcher(albums, query, func(a Album) []string { return []string{a.Name, a.ArtistName} })
}

// FilterArtists keeps artists whose name contains query.
func FilterArtists(artists []Artist, query string) []Artist {
	return matcher(artists, query, func(a Artist) []string { return []string{a.Name} })
}

// SearchSongs matches query against every text field of a song.
func SearchSongs(songs []Song, query string) []Song {
	return matcher(songs, query, func(s Song) []string {
		return []string{
			s.ID, s.Title, string(s.Type), s.AlbumID, s.ArtistID, s.ArtistName,
			s.Duration, s.ReleaseDate, s.Genre, s.AlbumCoverURL,
		}
	})
}

// UserRatings lists the songs userID has rated, filtered like FilterSongs.
// SortRating orders by the user's own rating rather than the average.
func UserRatings(songs []Song, userID, query string, opt SortOption) ([]Song, error) {
	rated := make([]Song, 0)
	for _, s := range songs {
		if _, ok := UserRating(s, userID); ok {
			rated = append(rated, s)
		}
	}
	rated = FilterSongs(rated, query)

	if opt == SortRating {
		return sortByScore(rated, func(s Song) float64 {
			r, _ := UserRating(s, userID)
			return float64(r)
		}), nil
	}
	return SortSongs(rated, opt)
}

// SuggestField names a form field that offers autocomplete.
type SuggestField string

const (
	SuggestTitle      SuggestField = "title"
	SuggestAlbumName  SuggestField = "albumName"
	SuggestArtistName SuggestField = "artistName"
)

// Suggestions returns existing titles, album names or artist names that
// contain text, ignoring case, in catalog order without repeats.
func Suggestions(snap Snapshot, field SuggestField, text string) ([]string, error) {
	var names []string
	switch field {
	case SuggestTitle:
		for _, s := range snap.Songs {
			names = append(names, s.Title)
		}
	case SuggestAlbumName:
		for _, a := range snap.Albums {
			names = append(names, a.Name)
		}
	case SuggestArtistName:
		for _, a := range snap.Artists {
			names = append(names, a.Name)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	q := strings.ToLower(text)
	out := []string{}
	for _, n := range names {
		if containsFold(n, q) && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption names one of the list orders.
type SortOption string

const (
	// SortRating orders by descending average rating.
	SortRating SortOption = "rating"
	// SortAlphabetical orders by name or title using English collation.
	SortAlphabetical SortOption = "alphabetical"
	// SortReleaseDate orders newest first.
	SortReleaseDate SortOption = "releaseDate"
	// SortSongCount orders artists by how many songs they have.
	SortSongCount SortOption = "songCount"
)

// ParseSort validates value against the allowed options. An empty value
// selects SortRating.
func ParseSort(value string, allowed ...SortOption) (SortOption, error) {
	if value == "" {
		return SortRating, nil
	}
	for _, opt := range allowed {
		if string(opt) == value {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, value)
}

// SongSorts lists the orders available for songs.
var SongSorts = []SortOption{SortRating, SortAlphabetical, SortReleaseDate}

// AlbumSorts lists the orders available for albums.
var AlbumSorts = []SortOption{SortRating, SortAlphabetical, SortReleaseDate}

// ArtistSorts lists the orders available for artists.
var ArtistSorts = []SortOption{SortRating, SortAlphabetical, SortSongCount}

// SortSongs returns a sorted copy of songs. All orders are stable.
func SortSongs(songs []Song, opt SortOption) ([]Song, error) {
	switch opt {
	case SortRating:
		return sortByScore(songs, SongAverage), nil
	case SortAlphabetical:
		return sortByName(songs, func(s Song) string { return s.Title }), nil
	case SortReleaseDate:
		return sortByDate(songs, func(s Song) string { return s.ReleaseDate }), nil
	default:
		return nil, fmt.Errorf("%w for songs: %q", ErrUnknownSort, opt)
	}
}

// SortAlbums returns a sorted copy of albums. Ratings come from songs.
func SortAlbums(albums []Album, songs []Song, opt SortOption) ([]Album, error) {
	switch opt {
	case SortRating:
		return sortByScore(albums, func(a Album) float64 { return AlbumAverage(a, songs) }), nil
	case SortAlphabetical:
		return sortByName(albums, func(a Album) string { return a.Name }), nil
	case SortReleaseDate:
		return sortByDate(albums, func(a Album) string { return a.ReleaseDate }), nil
	default:
		return nil, fmt.Errorf("%w for albums: %q", ErrUnknownSort, opt)
	}
}

// SortArtists returns a sorted copy of artists. Ratings come from songs.
func SortArtists(artists []Artist, songs []Song, opt SortOption) ([]Artist, error) {
	switch opt {
	case SortRating:
		return sortByScore(artists, func(a Artist) float64 { return ArtistAverage(a, songs) }), nil
	case SortAlphabetical:
		return sortByName(artists, func(a Artist) string { return a.Name }), nil
	case SortSongCount:
		return sortByScore(artists, func(a Artist) float64 { return float64(len(a.Songs)) }), nil
	default:
		return nil, fmt.Errorf("%w for artists: %q", ErrUnknownSort, opt)
	}
}

// TopSongs returns at most n songs with the highest average rating.
func TopSongs(songs []Song, n int) []Song {
	return prefix(sortByScore(songs, SongAverage), n)
}

// FeaturedAlbums returns at most n albums with the highest average rating.
func FeaturedAlbums(albums []Album, songs []Song, n int) []Album {
	sorted, _ := SortAlbums(albums, songs, SortRating)
	return prefix(sorted, n)
}

type scored[T any] struct {
	item  T
	score float64
}

// sortByScore orders items by descending score, computing each score once.
func sortByScore[T any](items []T, score func(T) float64) []T {
	ranked := make([]scored[T], len(items))
	for i, it := range items {
		ranked[i] = scored[T]{item: it, score: score(it)}
	}
	slices.SortStableFunc(ranked, func(a, b scored[T]) int {
		return cmp.Compare(b.score, a.score)
	})
	return unwrap(ranked)
}

func sortByName[T any](items []T, name func(T) string) []T {
	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English)
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return col.CompareString(name(a), name(b))
	})
	return out
}

// sortByDate orders newest first. Values that do not parse as a calendar
// date go last.
func sortByDate[T any](items []T, date func(T) string) []T {
	type dated struct {
		item T
		at   time.Time
		ok   bool
	}
	ds := make([]dated, len(items))
	for i, it := range items {
		at, ok := parseDate(date(it))
		ds[i] = dated{item: it, at: at, ok: ok}
	}
	slices.SortStableFunc(ds, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return b.at.Compare(a.at)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})
	out := make([]T, len(ds))
	for i, d := range ds {
		out[i] = d.item
	}
	return out
}

func unwrap[T any](ranked []scored[T]) []T {
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

func prefix[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

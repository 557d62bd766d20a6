// Package catalog holds the song/album/artist model and the pure operations
// over it: submissions, the rating ledger and the derived rating views.
//
// Every function in this package takes collections by value and returns new
// collections. Nothing here mutates its inputs or performs I/O.
package catalog

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrInvalidSubmission indicates the song form failed validation.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrDuplicateSubmission indicates the form adds no new song, album or artist.
	ErrDuplicateSubmission = errors.New("submission adds nothing new")
	// ErrUnknownSort indicates an unsupported sort option.
	ErrUnknownSort = errors.New("unknown sort option")
	// ErrUnknownField indicates a suggestion request for a field without autocomplete.
	ErrUnknownField = errors.New("unknown suggestion field")
)

// SongType distinguishes album tracks from singles.
type SongType string

const (
	SongTypeSingle SongType = "single"
	SongTypeAlbum  SongType = "album"
)

// DateLayout is the calendar date format used for release dates.
const DateLayout = "2006-01-02"

// Genres is the fixed set of genres a song may carry.
var Genres = []string{
	"Pop", "Rock", "Hip Hop", "R&B", "Country", "Electronic", "Jazz", "Classical", "Reggae", "Folk",
	"Blues", "Metal", "Punk", "Indie", "Alternative", "Soul", "Funk", "Disco", "Techno", "House",
	"Ambient", "Trap", "Grunge", "Gospel", "Latin", "World", "Ska", "Dubstep", "Experimental",
}

// IsGenre reports whether name is one of Genres.
func IsGenre(name string) bool {
	for _, g := range Genres {
		if g == name {
			return true
		}
	}
	return false
}

// Rating is one user's score for a song.
type Rating struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
}

// Song is a single track in the catalog.
type Song struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          SongType `json:"type"`
	AlbumID       string   `json:"albumId,omitempty"`
	ArtistID      string   `json:"artistId"`
	ArtistName    string   `json:"artistName"`
	Duration      string   `json:"duration"`
	ReleaseDate   string   `json:"releaseDate"`
	Genre         string   `json:"genre"`
	AlbumCoverURL string   `json:"albumCoverUrl"`
	Ratings       []Rating `json:"ratings"`
}

// Album groups songs released together.
type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ArtistName  string   `json:"artistName"`
	ArtistID    string   `json:"artistId,omitempty"`
	CoverURL    string   `json:"coverUrl"`
	ReleaseDate string   `json:"releaseDate"`
	Songs       []string `json:"songs"`
}

// Artist owns the songs attributed to it.
type Artist struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Songs    []string `json:"songs"`
}

// User is the signed-in listener. PasswordHash is a placeholder credential.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
}

// Snapshot is the complete catalog state at one point in time.
type Snapshot struct {
	Songs   []Song
	Albums  []Album
	Artists []Artist
	User    *User
}

// FindSong returns the song with the given id.
func FindSong(songs []Song, id string) (Song, bool) {
	for _, s := range songs {
		if s.ID == id {
			return s, true
		}
	}
	return Song{}, false
}

// FindAlbum returns the album with the given id.
func FindAlbum(albums []Album, id string) (Album, bool) {
	if id == "" {
		return Album{}, false
	}
	for _, a := range albums {
		if a.ID == id {
			return a, true
		}
	}
	return Album{}, false
}

// FindArtist returns the artist with the given id.
func FindArtist(artists []Artist, id string) (Artist, bool) {
	if id == "" {
		return Artist{}, false
	}
	for _, a := range artists {
		if a.ID == id {
			return a, true
		}
	}
	return Artist{}, false
}

// AlbumArtist resolves the artist of an album. The artistId link wins; albums
// written before that field existed fall back to a case-insensitive name match.
func AlbumArtist(album Album, artists []Artist) (Artist, bool) {
	if album.ArtistID != "" {
		return FindArtist(artists, album.ArtistID)
	}
	return artistByName(artists, album.ArtistName)
}

func artistByName(artists []Artist, name string) (Artist, bool) {
	for _, a := range artists {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Artist{}, false
}

func albumByName(albums []Album, name string) (Album, bool) {
	for _, a := range albums {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Album{}, false
}

func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

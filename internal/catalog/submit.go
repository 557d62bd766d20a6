package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ratedeck/internal/validation"
)

func init() {
	validation.MustRegister("genre", func(fl validator.FieldLevel) bool {
		return IsGenre(fl.Field().String())
	})
}

// SongForm is the contributor's "add a song" submission.
type SongForm struct {
	Title          string   `json:"title" validate:"notblank"`
	Type           SongType `json:"type" validate:"oneof=single album"`
	AlbumName      string   `json:"albumName,omitempty" validate:"required_if=Type album"`
	ArtistName     string   `json:"artistName" validate:"notblank"`
	Duration       string   `json:"duration"`
	AlbumCoverURL  string   `json:"albumCoverUrl" validate:"notblank"`
	ArtistImageURL string   `json:"artistImageUrl" validate:"notblank"`
	ReleaseDate    string   `json:"releaseDate" validate:"notblank,datetime=2006-01-02"`
	Genre          string   `json:"genre" validate:"genre"`
	AlbumID        string   `json:"albumId,omitempty"`
	ArtistID       string   `json:"artistId,omitempty"`
}

// IDGenerator allocates record identifiers. Uniqueness is the only contract.
type IDGenerator func() string

// NewID returns a time-ordered UUID.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ResolveForm sets the album and artist references of form from existing
// records with a case-insensitive name match. References the caller sent are
// discarded; names are the only way to point at an existing record.
func ResolveForm(form SongForm, albums []Album, artists []Artist) SongForm {
	form.AlbumID = ""
	if form.Type == SongTypeAlbum {
		if a, ok := albumByName(albums, strings.TrimSpace(form.AlbumName)); ok {
			form.AlbumID = a.ID
		}
	}
	form.ArtistID = ""
	if a, ok := artistByName(artists, strings.TrimSpace(form.ArtistName)); ok {
		form.ArtistID = a.ID
	}
	return form
}

// CheckSubmission reports whether form may be submitted against snap: the
// required fields must be present and at least one of the song title, album
// name or artist name must be new to the catalog. A single has no album to
// match, so its album always counts as new.
func CheckSubmission(form SongForm, snap Snapshot) error {
	if verr := validation.ValidateStruct(form); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSubmission, verr.Error())
	}
	if form.Type == SongTypeAlbum && strings.TrimSpace(form.AlbumName) == "" {
		return fmt.Errorf("%w: albumName is required for album tracks", ErrInvalidSubmission)
	}

	titleExists := slices.ContainsFunc(snap.Songs, func(s Song) bool {
		return strings.EqualFold(s.Title, form.Title)
	})
	_, artistExists := artistByName(snap.Artists, form.ArtistName)

	newParts := 0
	if !titleExists {
		newParts++
	}
	if !artistExists {
		newParts++
	}
	albumExists := false
	if form.Type == SongTypeAlbum {
		_, albumExists = albumByName(snap.Albums, form.AlbumName)
	}
	if !albumExists {
		newParts++
	}

	if newParts == 0 {
		return ErrDuplicateSubmission
	}
	return nil
}

// SubmitSong adds the song described by form to the catalog. The album and
// artist named by form.AlbumID / form.ArtistID are extended when they exist
// under the form's names and created otherwise. A linked song carries the
// artist's stored name. The returned snapshot shares no mutable state with
// snap; snap itself is left unchanged.
func SubmitSong(form SongForm, snap Snapshot, newID IDGenerator) (Snapshot, Song) {
	if newID == nil {
		newID = NewID
	}

	song := Song{
		ID:            newID(),
		Title:         form.Title,
		Type:          form.Type,
		Duration:      form.Duration,
		ReleaseDate:   form.ReleaseDate,
		Genre:         form.Genre,
		AlbumCoverURL: form.AlbumCoverURL,
		ArtistName:    form.ArtistName,
		Ratings:       []Rating{},
	}

	artists := slices.Clone(snap.Artists)
	if idx := slices.IndexFunc(artists, func(a Artist) bool { return refersTo(form.ArtistID, a.ID, form.ArtistName, a.Name) }); idx >= 0 {
		artist := artists[idx]
		artist.Songs = append(slices.Clip(artist.Songs), song.ID)
		artists[idx] = artist
		song.ArtistID = artist.ID
		song.ArtistName = artist.Name
	} else {
		artist := Artist{
			ID:       newID(),
			Name:     form.ArtistName,
			ImageURL: form.ArtistImageURL,
			Songs:    []string{song.ID},
		}
		artists = append(artists, artist)
		song.ArtistID = artist.ID
	}

	albums := slices.Clone(snap.Albums)
	if form.Type == SongTypeAlbum {
		if idx := slices.IndexFunc(albums, func(a Album) bool { return refersTo(form.AlbumID, a.ID, form.AlbumName, a.Name) }); idx >= 0 {
			album := albums[idx]
			album.Songs = append(slices.Clip(album.Songs), song.ID)
			albums[idx] = album
			song.AlbumID = album.ID
		} else {
			album := Album{
				ID:          newID(),
				Name:        form.AlbumName,
				ArtistName:  song.ArtistName,
				ArtistID:    song.ArtistID,
				CoverURL:    form.AlbumCoverURL,
				ReleaseDate: form.ReleaseDate,
				Songs:       []string{song.ID},
			}
			albums = append(albums, album)
			song.AlbumID = album.ID
		}
	} else {
		song.Type = SongTypeSingle
	}

	return Snapshot{
		Songs:   append(slices.Clip(snap.Songs), song),
		Albums:  albums,
		Artists: artists,
		User:    snap.User,
	}, song
}

// refersTo reports whether a form reference (id, name) points at the record
// (recordID, recordName). The id must match and the names must agree.
func refersTo(id, recordID, name, recordName string) bool {
	return id != "" && id == recordID && strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(recordName))
}

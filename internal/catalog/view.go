package catalog

// Sizes of the leaderboards shown on detail pages and the home page.
const (
	AlbumTopSongs  = 3
	ArtistTopSongs = 5
	FeaturedCount  = 5
)

// SongView is a song with its derived rating figures.
type SongView struct {
	Song
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	UserRating    *int    `json:"userRating,omitempty"`
}

// AlbumView is an album with its derived rating figures.
type AlbumView struct {
	Album
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// ArtistView is an artist with its derived rating figures.
type ArtistView struct {
	Artist
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	SongCount     int     `json:"songCount"`
}

// SongDetail backs the song page.
type SongDetail struct {
	Song   SongView `json:"song"`
	Album  *Album   `json:"album,omitempty"`
	Artist *Artist  `json:"artist,omitempty"`
}

// AlbumDetail backs the album page.
type AlbumDetail struct {
	Album    AlbumView  `json:"album"`
	Artist   *Artist    `json:"artist,omitempty"`
	Tracks   []SongView `json:"tracks"`
	TopSongs []SongView `json:"topSongs"`
}

// ArtistDetail backs the artist page.
type ArtistDetail struct {
	Artist   ArtistView  `json:"artist"`
	TopSongs []SongView  `json:"topSongs"`
	Albums   []AlbumView `json:"albums"`
}

// FeaturedAlbum is one slide of the home page carousel.
type FeaturedAlbum struct {
	Album    AlbumView  `json:"album"`
	Artist   *Artist    `json:"artist,omitempty"`
	TopSongs []SongView `json:"topSongs"`
}

// ViewSong derives the figures for one song. viewerID may be empty.
func ViewSong(song Song, viewerID string) SongView {
	v := SongView{
		Song:          song,
		AverageRating: SongAverage(song),
		RatingCount:   RatingCount(song),
	}
	if viewerID != "" {
		if r, ok := UserRating(song, viewerID); ok {
			v.UserRating = &r
		}
	}
	return v
}

// ViewSongs applies ViewSong to every song.
func ViewSongs(songs []Song, viewerID string) []SongView {
	out := make([]SongView, len(songs))
	for i, s := range songs {
		out[i] = ViewSong(s, viewerID)
	}
	return out
}

// ViewAlbums derives the figures for every album.
func ViewAlbums(albums []Album, songs []Song) []AlbumView {
	out := make([]AlbumView, len(albums))
	for i, a := range albums {
		out[i] = AlbumView{
			Album:         a,
			AverageRating: AlbumAverage(a, songs),
			RatingCount:   AlbumRatingCount(a, songs),
		}
	}
	return out
}

// ViewArtists derives the figures for every artist.
func ViewArtists(artists []Artist, songs []Song) []ArtistView {
	out := make([]ArtistView, len(artists))
	for i, a := range artists {
		out[i] = ArtistView{
			Artist:        a,
			AverageRating: ArtistAverage(a, songs),
			RatingCount:   ArtistRatingCount(a, songs),
			SongCount:     len(a.Songs),
		}
	}
	return out
}

// DescribeSong builds the song page for id.
func DescribeSong(snap Snapshot, id, viewerID string) (SongDetail, error) {
	song, ok := FindSong(snap.Songs, id)
	if !ok {
		return SongDetail{}, ErrSongNotFound
	}
	detail := SongDetail{Song: ViewSong(song, viewerID)}
	if album, ok := FindAlbum(snap.Albums, song.AlbumID); ok {
		detail.Album = &album
	}
	if artist, ok := FindArtist(snap.Artists, song.ArtistID); ok {
		detail.Artist = &artist
	}
	return detail, nil
}

// DescribeAlbum builds the album page for id.
func DescribeAlbum(snap Snapshot, id, viewerID string) (AlbumDetail, error) {
	album, ok := FindAlbum(snap.Albums, id)
	if !ok {
		return AlbumDetail{}, ErrAlbumNotFound
	}
	tracks := AlbumSongs(album, snap.Songs)
	detail := AlbumDetail{
		Album:    ViewAlbums([]Album{album}, snap.Songs)[0],
		Tracks:   ViewSongs(tracks, viewerID),
		TopSongs: ViewSongs(TopSongs(tracks, AlbumTopSongs), viewerID),
	}
	if artist, ok := AlbumArtist(album, snap.Artists); ok {
		detail.Artist = &artist
	}
	return detail, nil
}

// DescribeArtist builds the artist page for id.
func DescribeArtist(snap Snapshot, id, viewerID string) (ArtistDetail, error) {
	artist, ok := FindArtist(snap.Artists, id)
	if !ok {
		return ArtistDetail{}, ErrArtistNotFound
	}

	var albums []Album
	for _, a := range snap.Albums {
		if owner, ok := AlbumArtist(a, snap.Artists); ok && owner.ID == artist.ID {
			albums = append(albums, a)
		}
	}

	return ArtistDetail{
		Artist:   ViewArtists([]Artist{artist}, snap.Songs)[0],
		TopSongs: ViewSongs(TopSongs(ArtistSongs(artist, snap.Songs), ArtistTopSongs), viewerID),
		Albums:   ViewAlbums(albums, snap.Songs),
	}, nil
}

// Featured builds the home page carousel: the best rated albums, each with
// its artist and its best rated songs.
func Featured(snap Snapshot, viewerID string) []FeaturedAlbum {
	top := FeaturedAlbums(snap.Albums, snap.Songs, FeaturedCount)
	out := make([]FeaturedAlbum, len(top))
	for i, album := range top {
		f := FeaturedAlbum{
			Album:    ViewAlbums([]Album{album}, snap.Songs)[0],
			TopSongs: ViewSongs(TopSongs(AlbumSongs(album, snap.Songs), AlbumTopSongs), viewerID),
		}
		if artist, ok := AlbumArtist(album, snap.Artists); ok {
			f.Artist = &artist
		}
		out[i] = f
	}
	return out
}

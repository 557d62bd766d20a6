package catalog

// SongAverage is the arithmetic mean of the song's ratings, or 0 when the song
// has none.
func SongAverage(song Song) float64 {
	if len(song.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range song.Ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(song.Ratings))
}

// RatingCount is the number of ratings the song holds.
func RatingCount(song Song) int {
	return len(song.Ratings)
}

// AlbumSongs returns the songs whose albumId is album.ID, in catalog order.
func AlbumSongs(album Album, songs []Song) []Song {
	out := []Song{}
	for _, s := range songs {
		if s.AlbumID != "" && s.AlbumID == album.ID {
			out = append(out, s)
		}
	}
	return out
}

// ArtistSongs returns the songs whose artistId is artist.ID, in catalog order.
func ArtistSongs(artist Artist, songs []Song) []Song {
	out := []Song{}
	for _, s := range songs {
		if s.ArtistID == artist.ID {
			out = append(out, s)
		}
	}
	return out
}

// AlbumAverage averages the per-song averages of the album's songs. Every song
// weighs the same regardless of how many ratings it has.
func AlbumAverage(album Album, songs []Song) float64 {
	return meanOfMeans(AlbumSongs(album, songs))
}

// ArtistAverage averages the per-song averages of the artist's songs.
func ArtistAverage(artist Artist, songs []Song) float64 {
	return meanOfMeans(ArtistSongs(artist, songs))
}

// AlbumRatingCount is the number of individual ratings across the album.
func AlbumRatingCount(album Album, songs []Song) int {
	return totalRatings(AlbumSongs(album, songs))
}

// ArtistRatingCount is the number of individual ratings across the artist.
func ArtistRatingCount(artist Artist, songs []Song) int {
	return totalRatings(ArtistSongs(artist, songs))
}

func meanOfMeans(songs []Song) float64 {
	if len(songs) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range songs {
		total += SongAverage(s)
	}
	return total / float64(len(songs))
}

func totalRatings(songs []Song) int {
	n := 0
	for _, s := range songs {
		n += len(s.Ratings)
	}
	return n
}

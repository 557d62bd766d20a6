package catalog

// SetRating records userID's rating for song, replacing any earlier rating by
// the same user. The value is stored as given; range checks belong to callers.
func SetRating(song Song, userID string, rating int) Song {
	ratings := make([]Rating, 0, len(song.Ratings)+1)
	for _, r := range song.Ratings {
		if r.UserID != userID {
			ratings = append(ratings, r)
		}
	}
	song.Ratings = append(ratings, Rating{UserID: userID, Rating: rating})
	return song
}

// UserRating returns the rating userID gave song, if any.
func UserRating(song Song, userID string) (int, bool) {
	for _, r := range song.Ratings {
		if r.UserID == userID {
			return r.Rating, true
		}
	}
	return 0, false
}

// RateSong applies SetRating to the song with the given id and returns a new
// slice. The input slice is left untouched.
func RateSong(songs []Song, songID, userID string, rating int) ([]Song, error) {
	updated := make([]Song, len(songs))
	found := false
	for i, s := range songs {
		if s.ID == songID {
			s = SetRating(s, userID, rating)
			found = true
		}
		updated[i] = s
	}
	if !found {
		return nil, ErrSongNotFound
	}
	return updated, nil
}

// dedupeRatings collapses repeated user entries, keeping the last one. It is
// used when loading data written before the one-rating-per-user rule held.
func dedupeRatings(ratings []Rating) []Rating {
	if len(ratings) == 0 {
		return []Rating{}
	}
	out := []Rating{}
	for _, r := range ratings {
		out = SetRating(Song{Ratings: out}, r.UserID, r.Rating).Ratings
	}
	return out
}

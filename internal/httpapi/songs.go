package httpapi

import (
	"net/http"

	"ratedeck/internal/catalog"
)

type rateRequest struct {
	Rating int `json:"rating" validate:"min=1,max=10"`
}

type songsResponse struct {
	Songs []catalog.SongView `json:"songs"`
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	songs, err := s.songs.List(r.Context(), query.Get("q"), query.Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songsResponse{Songs: songs})
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songsResponse{Songs: songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	detail, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSubmitSong(w http.ResponseWriter, r *http.Request) {
	var form catalog.SongForm
	if !decodeAndValidate(w, r, &form) {
		return
	}

	song, err := s.songs.Submit(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleRateSong(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req rateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	song, err := s.ratings.Rate(r.Context(), r.PathValue("id"), req.Rating)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleMyRatings(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	songs, err := s.ratings.Mine(r.Context(), query.Get("q"), query.Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songsResponse{Songs: songs})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	suggestions, err := s.songs.Suggestions(r.Context(), query.Get("field"), query.Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Suggestions []string `json:"suggestions"`
	}{Suggestions: suggestions})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.songs.Genres(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Genres []string `json:"genres"`
	}{Genres: genres})
}

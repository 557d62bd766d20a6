package httpapi

import (
	"net/http"

	"ratedeck/internal/catalog"
)

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	albums, err := s.albums.List(r.Context(), query.Get("q"), query.Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Albums []catalog.AlbumView `json:"albums"`
	}{Albums: albums})
}

func (s *Server) handleFeaturedAlbums(w http.ResponseWriter, r *http.Request) {
	featured, err := s.albums.Featured(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Featured []catalog.FeaturedAlbum `json:"featured"`
	}{Featured: featured})
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	detail, err := s.albums.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	artists, err := s.artists.List(r.Context(), query.Get("q"), query.Get("sort"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Artists []catalog.ArtistView `json:"artists"`
	}{Artists: artists})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	detail, err := s.artists.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

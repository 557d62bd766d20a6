package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ratedeck/internal/app/users"
	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
	"ratedeck/internal/platform/logging"
	"ratedeck/internal/validation"
)

// UserService captures the session operations needed by the HTTP handlers.
type UserService interface {
	SignIn(ctx context.Context, email, password string) (users.Session, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (catalog.User, error)
	Authenticate(ctx context.Context, token string) (catalog.User, error)
	Reset(ctx context.Context) error
}

// SongService coordinates track-level operations.
type SongService interface {
	List(ctx context.Context, query, sort string) ([]catalog.SongView, error)
	Search(ctx context.Context, query string) ([]catalog.SongView, error)
	Get(ctx context.Context, id string) (catalog.SongDetail, error)
	Submit(ctx context.Context, form catalog.SongForm) (catalog.SongView, error)
	Suggestions(ctx context.Context, field, text string) ([]string, error)
	Genres(ctx context.Context) ([]string, error)
}

// AlbumService exposes album-specific workflows.
type AlbumService interface {
	List(ctx context.Context, query, sort string) ([]catalog.AlbumView, error)
	Get(ctx context.Context, id string) (catalog.AlbumDetail, error)
	Featured(ctx context.Context) ([]catalog.FeaturedAlbum, error)
}

// ArtistService describes artist catalogue workflows.
type ArtistService interface {
	List(ctx context.Context, query, sort string) ([]catalog.ArtistView, error)
	Get(ctx context.Context, id string) (catalog.ArtistDetail, error)
}

// RatingsService describes rating workflows.
type RatingsService interface {
	Rate(ctx context.Context, songID string, rating int) (catalog.SongView, error)
	Mine(ctx context.Context, query, sort string) ([]catalog.SongView, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users   UserService
	songs   SongService
	albums  AlbumService
	artists ArtistService
	ratings RatingsService
}

// New configures a Server with the given services.
func New(
	users UserService,
	songs SongService,
	albums AlbumService,
	artists ArtistService,
	ratings RatingsService,
) *Server {
	return &Server{
		users:   users,
		songs:   songs,
		albums:  albums,
		artists: artists,
		ratings: ratings,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Session
	mux.HandleFunc("POST /api/v1/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/v1/auth/signout", s.handleSignOut)
	mux.HandleFunc("GET /api/v1/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/me/ratings", s.handleMyRatings)

	// Songs
	mux.HandleFunc("GET /api/v1/songs", s.withViewer(s.handleListSongs))
	mux.HandleFunc("GET /api/v1/songs/search", s.withViewer(s.handleSearchSongs))
	mux.HandleFunc("GET /api/v1/songs/{id}", s.withViewer(s.handleGetSong))
	mux.HandleFunc("POST /api/v1/songs", s.handleSubmitSong)
	mux.HandleFunc("PUT /api/v1/songs/{id}/rating", s.handleRateSong)
	mux.HandleFunc("GET /api/v1/suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /api/v1/genres", s.handleGenres)

	// Albums
	mux.HandleFunc("GET /api/v1/albums", s.handleListAlbums)
	mux.HandleFunc("GET /api/v1/albums/featured", s.withViewer(s.handleFeaturedAlbums))
	mux.HandleFunc("GET /api/v1/albums/{id}", s.withViewer(s.handleGetAlbum))

	// Artists
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.withViewer(s.handleGetArtist))

	mux.HandleFunc("DELETE /api/v1/catalog", s.handleResetCatalog)

	return mux
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrSongNotFound),
		errors.Is(err, catalog.ErrAlbumNotFound),
		errors.Is(err, catalog.ErrArtistNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidSubmission),
		errors.Is(err, catalog.ErrUnknownSort),
		errors.Is(err, catalog.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, users.ErrInvalidToken),
		errors.Is(err, library.ErrNotSignedIn),
		errors.Is(err, library.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeAndValidate reads a JSON body into dst and applies its validate tags.
// It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
		return false
	}
	return true
}

// requireUser resolves the bearer token to the signed-in user and returns the
// request with that user as viewer. It writes the 401 response itself and
// reports false on failure.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*http.Request, catalog.User, bool) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return r, catalog.User{}, false
	}
	user, err := s.users.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return r, catalog.User{}, false
	}
	return r.WithContext(library.WithViewer(r.Context(), user.ID)), user, true
}

// withViewer lets public reads show the caller's own ratings. A missing or
// rejected token leaves the request anonymous.
func (s *Server) withViewer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := parseBearerToken(r.Header.Get("Authorization")); token != "" {
			if user, err := s.users.Authenticate(r.Context(), token); err == nil {
				r = r.WithContext(library.WithViewer(r.Context(), user.ID))
			}
		}
		next(w, r)
	}
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

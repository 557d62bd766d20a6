package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ratedeck/internal/app/users"
	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

type stubUserService struct {
	session   users.Session
	signInErr error

	validToken string
	user       catalog.User

	signedOut bool
	resetErr  error
	resets    int
}

func (s *stubUserService) SignIn(_ context.Context, email, _ string) (users.Session, error) {
	if s.signInErr != nil {
		return users.Session{}, s.signInErr
	}
	return s.session, nil
}

func (s *stubUserService) SignOut(context.Context) error {
	s.signedOut = true
	return nil
}

func (s *stubUserService) Current(context.Context) (catalog.User, error) {
	return s.user, nil
}

func (s *stubUserService) Authenticate(_ context.Context, token string) (catalog.User, error) {
	if token != s.validToken || s.validToken == "" {
		return catalog.User{}, users.ErrInvalidToken
	}
	return s.user, nil
}

func (s *stubUserService) Reset(context.Context) error {
	s.resets++
	return s.resetErr
}

type stubSongService struct {
	listResponse []catalog.SongView
	listErr      error
	lastQuery    string
	lastSort     string
	lastViewer   string

	detail    catalog.SongDetail
	detailErr error

	submitted catalog.SongForm
	submitErr error
}

func (s *stubSongService) List(ctx context.Context, query, sort string) ([]catalog.SongView, error) {
	s.lastQuery, s.lastSort = query, sort
	s.lastViewer = library.ViewerFrom(ctx)
	return s.listResponse, s.listErr
}

func (s *stubSongService) Search(_ context.Context, query string) ([]catalog.SongView, error) {
	s.lastQuery = query
	return s.listResponse, s.listErr
}

func (s *stubSongService) Get(context.Context, string) (catalog.SongDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubSongService) Submit(_ context.Context, form catalog.SongForm) (catalog.SongView, error) {
	s.submitted = form
	if s.submitErr != nil {
		return catalog.SongView{}, s.submitErr
	}
	return catalog.SongView{Song: catalog.Song{ID: "new", Title: form.Title}}, nil
}

func (s *stubSongService) Suggestions(_ context.Context, field, _ string) ([]string, error) {
	if field != "title" {
		return nil, catalog.ErrUnknownField
	}
	return []string{"Angel"}, nil
}

func (s *stubSongService) Genres(context.Context) ([]string, error) {
	return catalog.Genres, nil
}

type stubAlbumService struct {
	detailErr error
}

func (s *stubAlbumService) List(context.Context, string, string) ([]catalog.AlbumView, error) {
	return []catalog.AlbumView{{Album: catalog.Album{ID: "al1"}}}, nil
}

func (s *stubAlbumService) Get(_ context.Context, id string) (catalog.AlbumDetail, error) {
	if s.detailErr != nil {
		return catalog.AlbumDetail{}, s.detailErr
	}
	return catalog.AlbumDetail{Album: catalog.AlbumView{Album: catalog.Album{ID: id}}}, nil
}

func (s *stubAlbumService) Featured(context.Context) ([]catalog.FeaturedAlbum, error) {
	return []catalog.FeaturedAlbum{}, nil
}

type noopArtistService struct{}

func (noopArtistService) List(context.Context, string, string) ([]catalog.ArtistView, error) {
	return nil, catalog.ErrUnknownSort
}

func (noopArtistService) Get(context.Context, string) (catalog.ArtistDetail, error) {
	return catalog.ArtistDetail{}, catalog.ErrArtistNotFound
}

type stubRatingsService struct {
	lastSongID string
	lastRating int
	lastViewer string
	rateErr    error
}

func (s *stubRatingsService) Rate(ctx context.Context, songID string, rating int) (catalog.SongView, error) {
	s.lastSongID, s.lastRating = songID, rating
	s.lastViewer = library.ViewerFrom(ctx)
	if s.rateErr != nil {
		return catalog.SongView{}, s.rateErr
	}
	return catalog.SongView{Song: catalog.Song{ID: songID}, AverageRating: float64(rating), RatingCount: 1}, nil
}

func (s *stubRatingsService) Mine(context.Context, string, string) ([]catalog.SongView, error) {
	return []catalog.SongView{}, nil
}

func newTestServer(t *testing.T, user *stubUserService, songs *stubSongService, ratings *stubRatingsService) http.Handler {
	t.Helper()
	if user == nil {
		user = &stubUserService{}
	}
	if songs == nil {
		songs = &stubSongService{}
	}
	if ratings == nil {
		ratings = &stubRatingsService{}
	}
	return New(user, songs, &stubAlbumService{}, noopArtistService{}, ratings).Routes()
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleListSongs(t *testing.T) {
	songStub := &stubSongService{
		listResponse: []catalog.SongView{{Song: catalog.Song{ID: "s1", Title: "Angel"}, AverageRating: 9}},
	}
	server := newTestServer(t, nil, songStub, nil)

	rr := do(t, server, http.MethodGet, "/api/v1/songs?q=ang&sort=alphabetical", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var payload struct {
		Songs []struct {
			ID            string  `json:"id"`
			Title         string  `json:"title"`
			AverageRating float64 `json:"averageRating"`
		} `json:"songs"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Songs) != 1 || payload.Songs[0].ID != "s1" || payload.Songs[0].AverageRating != 9 {
		t.Fatalf("unexpected songs payload: %#v", payload.Songs)
	}
	if songStub.lastQuery != "ang" || songStub.lastSort != "alphabetical" {
		t.Fatalf("expected query and sort passed through, got %q/%q", songStub.lastQuery, songStub.lastSort)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: catalog.ErrSongNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown sort", err: catalog.ErrUnknownSort, wantStatus: http.StatusBadRequest},
		{name: "invalid submission", err: catalog.ErrInvalidSubmission, wantStatus: http.StatusBadRequest},
		{name: "duplicate", err: catalog.ErrDuplicateSubmission, wantStatus: http.StatusConflict},
		{name: "not signed in", err: library.ErrNotSignedIn, wantStatus: http.StatusUnauthorized},
		{name: "infrastructure", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := newTestServer(t, nil, &stubSongService{listErr: tc.err}, nil)
			rr := do(t, server, http.MethodGet, "/api/v1/songs", "", nil)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			var payload errorResponse
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload.Error == "" {
				t.Fatalf("expected error message")
			}
			if tc.wantStatus == http.StatusInternalServerError && strings.Contains(payload.Error, "disk") {
				t.Fatalf("internal error leaked: %q", payload.Error)
			}
		})
	}
}

func TestHandleGetSongNotFound(t *testing.T) {
	server := newTestServer(t, nil, &stubSongService{detailErr: catalog.ErrSongNotFound}, nil)

	rr := do(t, server, http.MethodGet, "/api/v1/songs/missing", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleSubmitSong(t *testing.T) {
	songStub := &stubSongService{}
	server := newTestServer(t, nil, songStub, nil)

	form := catalog.SongForm{
		Title:          "Angel",
		Type:           catalog.SongTypeAlbum,
		AlbumName:      "Mezzanine",
		ArtistName:     "Massive Attack",
		AlbumCoverURL:  "https://img.example/cover.jpg",
		ArtistImageURL: "https://img.example/artist.jpg",
		ReleaseDate:    "1998-04-20",
		Genre:          "Electronic",
	}
	rr := do(t, server, http.MethodPost, "/api/v1/songs", "", form)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if songStub.submitted.AlbumName != "Mezzanine" {
		t.Fatalf("unexpected submitted form: %#v", songStub.submitted)
	}
}

func TestHandleSubmitSongValidationError(t *testing.T) {
	songStub := &stubSongService{}
	server := newTestServer(t, nil, songStub, nil)

	rr := do(t, server, http.MethodPost, "/api/v1/songs", "", catalog.SongForm{Title: "Angel", Type: catalog.SongTypeAlbum})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	var payload errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Fields) == 0 {
		t.Fatalf("expected field errors, got %#v", payload)
	}
	if songStub.submitted.Title != "" {
		t.Fatalf("service should not be called on invalid input")
	}
}

func TestHandleSubmitSongDuplicate(t *testing.T) {
	server := newTestServer(t, nil, &stubSongService{submitErr: catalog.ErrDuplicateSubmission}, nil)

	form := catalog.SongForm{
		Title: "Angel", Type: catalog.SongTypeSingle, ArtistName: "Massive Attack",
		AlbumCoverURL: "c", ArtistImageURL: "a", ReleaseDate: "1998-04-20", Genre: "Electronic",
	}
	rr := do(t, server, http.MethodPost, "/api/v1/songs", "", form)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

func TestHandleRateSong(t *testing.T) {
	userStub := &stubUserService{validToken: "tok", user: catalog.User{ID: "u1"}}
	ratingsStub := &stubRatingsService{}
	server := newTestServer(t, userStub, nil, ratingsStub)

	rr := do(t, server, http.MethodPut, "/api/v1/songs/s1/rating", "tok", map[string]int{"rating": 8})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ratingsStub.lastSongID != "s1" || ratingsStub.lastRating != 8 {
		t.Fatalf("unexpected rating call: %s=%d", ratingsStub.lastSongID, ratingsStub.lastRating)
	}
	if ratingsStub.lastViewer != "u1" {
		t.Fatalf("expected rater as viewer, got %q", ratingsStub.lastViewer)
	}
}

func TestPublicReadsCarryViewerOnlyWithToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantViewer string
	}{
		{name: "anonymous"},
		{name: "valid token", token: "tok", wantViewer: "u1"},
		{name: "rejected token", token: "stale"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			songStub := &stubSongService{}
			userStub := &stubUserService{validToken: "tok", user: catalog.User{ID: "u1"}}
			server := newTestServer(t, userStub, songStub, nil)

			rr := do(t, server, http.MethodGet, "/api/v1/songs", tc.token, nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
			if songStub.lastViewer != tc.wantViewer {
				t.Fatalf("expected viewer %q, got %q", tc.wantViewer, songStub.lastViewer)
			}
		})
	}
}

func TestHandleResetCatalogRequiresToken(t *testing.T) {
	userStub := &stubUserService{validToken: "tok", user: catalog.User{ID: "u1"}}
	server := newTestServer(t, userStub, nil, nil)

	if rr := do(t, server, http.MethodDelete, "/api/v1/catalog", "", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rr.Code)
	}
	if rr := do(t, server, http.MethodDelete, "/api/v1/catalog", "nope", nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with bad token, got %d", rr.Code)
	}
	if userStub.resets != 0 {
		t.Fatalf("catalog reset without a signed-in user")
	}

	if rr := do(t, server, http.MethodDelete, "/api/v1/catalog", "tok", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if userStub.resets != 1 {
		t.Fatalf("expected one reset, got %d", userStub.resets)
	}
}

func TestHandleRateSongRejects(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		body       any
		wantStatus int
	}{
		{name: "missing token", body: map[string]int{"rating": 5}, wantStatus: http.StatusUnauthorized},
		{name: "bad token", token: "nope", body: map[string]int{"rating": 5}, wantStatus: http.StatusUnauthorized},
		{name: "rating too high", token: "tok", body: map[string]int{"rating": 11}, wantStatus: http.StatusBadRequest},
		{name: "rating missing", token: "tok", body: map[string]string{}, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ratingsStub := &stubRatingsService{}
			userStub := &stubUserService{validToken: "tok", user: catalog.User{ID: "u1"}}
			server := newTestServer(t, userStub, nil, ratingsStub)

			rr := do(t, server, http.MethodPut, "/api/v1/songs/s1/rating", tc.token, tc.body)
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
			if ratingsStub.lastSongID != "" {
				t.Fatalf("service should not be called")
			}
		})
	}
}

func TestHandleSignIn(t *testing.T) {
	expires := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	userStub := &stubUserService{session: users.Session{
		Token:     "jwt",
		ExpiresAt: expires,
		User:      catalog.User{ID: "u1", Name: "john", Email: "john@example.com", PasswordHash: "$2a$secret"},
	}}
	server := newTestServer(t, userStub, nil, nil)

	rr := do(t, server, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{"email": "john@example.com", "password": "pw"})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Fatalf("password hash leaked: %s", rr.Body.String())
	}
	var payload signInResponse
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token != "jwt" || payload.User.ID != "u1" || !payload.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestHandleSignInInvalid(t *testing.T) {
	server := newTestServer(t, &stubUserService{signInErr: library.ErrInvalidCredentials}, nil, nil)

	if rr := do(t, server, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{"email": "not-an-email", "password": "pw"}); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad email, got %d", rr.Code)
	}
	if rr := do(t, server, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{"email": "john@example.com", "password": "pw"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestHandleSignOutAndMe(t *testing.T) {
	userStub := &stubUserService{validToken: "tok", user: catalog.User{ID: "u1", Email: "john@example.com"}}
	server := newTestServer(t, userStub, nil, nil)

	if rr := do(t, server, http.MethodGet, "/api/v1/me", "tok", nil); rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 for /me, got %d", rr.Code)
	}
	if rr := do(t, server, http.MethodPost, "/api/v1/auth/signout", "tok", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if !userStub.signedOut {
		t.Fatalf("expected sign-out to reach the service")
	}
}

func TestRoutesDispatch(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/albums", http.StatusOK},
		{http.MethodGet, "/api/v1/albums/featured", http.StatusOK},
		{http.MethodGet, "/api/v1/albums/al9", http.StatusOK},
		{http.MethodGet, "/api/v1/artists?sort=bogus", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/artists/ar1", http.StatusNotFound},
		{http.MethodGet, "/api/v1/genres", http.StatusOK},
		{http.MethodGet, "/api/v1/suggestions?field=title&q=an", http.StatusOK},
		{http.MethodGet, "/api/v1/suggestions?field=genre&q=an", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/songs/search?q=x", http.StatusOK},
		{http.MethodDelete, "/api/v1/catalog", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/albums", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := do(t, server, tc.method, tc.path, "", nil)
			if rr.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rr.Code)
			}
		})
	}
}

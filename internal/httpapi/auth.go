package httpapi

import (
	"net/http"
	"time"

	"ratedeck/internal/catalog"
)

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"notblank"`
}

// userResponse is the public view of a user; the password hash never leaves
// the server.
type userResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type signInResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func toUserResponse(u catalog.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := s.users.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(session.User),
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.users.SignOut(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	_, user, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleResetCatalog(w http.ResponseWriter, r *http.Request) {
	r, _, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if err := s.users.Reset(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

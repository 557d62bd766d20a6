package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ratedeck/internal/catalog"
	"ratedeck/internal/library"
)

// ErrInvalidToken indicates a bearer token that is malformed, expired, or
// issued to someone other than the signed-in user.
var ErrInvalidToken = errors.New("invalid token")

const tokenIssuer = "ratedeck"

// Library describes the session operations required by the user service.
type Library interface {
	SignIn(ctx context.Context, email, password string) (catalog.User, error)
	SignOut(ctx context.Context) error
	CurrentUser() (catalog.User, bool)
	Reset(ctx context.Context) error
}

// Session is a signed-in user and the bearer token issued for it.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      catalog.User
}

// Service exposes sign-in and session workflows.
type Service interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (catalog.User, error)
	Authenticate(ctx context.Context, token string) (catalog.User, error)
	Reset(ctx context.Context) error
}

// Config holds the token settings.
type Config struct {
	Secret []byte
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type service struct {
	library Library
	cfg     Config
}

// New wires a Service backed by the provided library.
func New(library Library, cfg Config) Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &service{library: library, cfg: cfg}
}

func (s *service) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	user, err := s.library.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	now := s.cfg.Now()
	expires := now.Add(s.cfg.TTL)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

func (s *service) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.library.SignOut(ctx)
}

func (s *service) Current(ctx context.Context) (catalog.User, error) {
	if err := ctx.Err(); err != nil {
		return catalog.User{}, err
	}
	user, ok := s.library.CurrentUser()
	if !ok {
		return catalog.User{}, library.ErrNotSignedIn
	}
	return user, nil
}

// Authenticate accepts tokens issued to the user who is currently signed in.
// Signing out therefore invalidates every outstanding token.
func (s *service) Authenticate(ctx context.Context, token string) (catalog.User, error) {
	if err := ctx.Err(); err != nil {
		return catalog.User{}, err
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.cfg.Now),
	)
	if err != nil {
		return catalog.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, ok := s.library.CurrentUser()
	if !ok || user.ID != claims.Subject {
		return catalog.User{}, ErrInvalidToken
	}
	return user, nil
}

func (s *service) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.library.Reset(ctx)
}

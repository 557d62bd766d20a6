package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ratedeck/internal/library"
	"ratedeck/internal/store"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestService(t *testing.T, now func() time.Time) (Service, *library.Library) {
	t.Helper()
	lib := library.New(store.New(store.NewMemory(), zerolog.Nop()), zerolog.Nop(), library.WithBcryptCost(bcrypt.MinCost))
	if err := lib.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	return New(lib, Config{Secret: testSecret, TTL: time.Hour, Now: now}), lib
}

func TestSignInIssuesToken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, func() time.Time { return now })

	session, err := svc.SignIn(ctx, "john@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.Token == "" || !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected session: %#v", session)
	}

	user, err := svc.Authenticate(ctx, session.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != session.User.ID {
		t.Fatalf("expected %s, got %s", session.User.ID, user.ID)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	svc, lib := newTestService(t, func() time.Time { return clock })

	session, err := svc.SignIn(ctx, "john@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	forged, _ := New(lib, Config{Secret: []byte("another-secret-entirely"), Now: func() time.Time { return now }}).SignIn(ctx, "john@example.com", "hunter2")

	tests := []struct {
		name  string
		token string
		setup func()
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: forged.Token},
		{name: "expired", token: session.Token, setup: func() { clock = now.Add(2 * time.Hour) }},
		{name: "signed out", token: session.Token, setup: func() {
			clock = now
			_ = svc.SignOut(ctx)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup()
			}
			if _, err := svc.Authenticate(ctx, tc.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestCurrentWithoutUser(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.Current(context.Background()); !errors.Is(err, library.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.SignIn(ctx, "john@example.com", "pw"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pawnbook/internal/api"
	"pawnbook/internal/store"
	"pawnbook/internal/token"
)

func mintToken(t *testing.T, tokenType string, userID int64, phone, role string, expiresAt time.Time) string {
	t.Helper()
	claims := token.Claims{
		TokenType: tokenType,
		UserID:    userID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phone,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return raw
}

func newManager(t *testing.T, baseURL string, tokenStore store.TokenStore) *Manager {
	t.Helper()
	tokens, err := api.NewTokenClient(baseURL, 5*time.Second, nil, nil)
	if err != nil {
		t.Fatalf("new token client: %v", err)
	}
	return NewManager(tokenStore, tokens)
}

func TestBootstrapWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unexpected call", http.StatusTeapot)
	}))
	defer srv.Close()

	s := store.NewMemStore()
	access := mintToken(t, token.TypeAccess, 12, "5550001111", "staff", time.Now().Add(10*time.Minute))
	refresh := mintToken(t, token.TypeRefresh, 12, "5550001111", "", time.Now().Add(24*time.Hour))
	if err := s.SetPair(ctx, store.Pair{Access: access, Refresh: refresh}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := newManager(t, srv.URL, s)
	sess, err := m.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if sess.UserID != 12 || sess.PhoneNumber != "5550001111" || sess.Role != "staff" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if got := m.Current(); got != sess {
		t.Fatalf("current=%+v want %+v", got, sess)
	}
	if calls.Load() != 0 {
		t.Fatalf("bootstrap performed %d network calls, want 0", calls.Load())
	}
}

func TestBootstrapExpiredAccessTokenStillProducesSession(t *testing.T) {
	// Correctness is recovered lazily: the first request made with the
	// expired token goes through the refresh path.
	ctx := context.Background()
	s := store.NewMemStore()
	access := mintToken(t, token.TypeAccess, 3, "5552223333", "admin", time.Now().Add(-time.Hour))
	refresh := mintToken(t, token.TypeRefresh, 3, "5552223333", "", time.Now().Add(24*time.Hour))
	if err := s.SetPair(ctx, store.Pair{Access: access, Refresh: refresh}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := newManager(t, "http://localhost:0", s)
	sess, err := m.Bootstrap(ctx)
	if err != nil {
		t.Fatalf("bootstrap with expired access token: %v", err)
	}
	if sess.UserID != 3 || sess.Role != "admin" {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestBootstrapFailures(t *testing.T) {
	ctx := context.Background()
	validRefresh := mintToken(t, token.TypeRefresh, 1, "555", "", time.Now().Add(time.Hour))

	cases := map[string]store.Pair{
		"empty store":       {},
		"missing refresh":   {Access: mintToken(t, token.TypeAccess, 1, "555", "staff", time.Now().Add(time.Hour))},
		"missing access":    {Refresh: validRefresh},
		"undecodable":       {Access: "not.a.token", Refresh: validRefresh},
		"refresh as access": {Access: validRefresh, Refresh: validRefresh},
	}
	for name, pair := range cases {
		t.Run(name, func(t *testing.T) {
			s := store.NewMemStore()
			if pair != (store.Pair{}) {
				if err := s.SetPair(ctx, pair); err != nil {
					t.Fatalf("seed store: %v", err)
				}
			}
			m := newManager(t, "http://localhost:0", s)
			if _, err := m.Bootstrap(ctx); !errors.Is(err, ErrNoSession) {
				t.Fatalf("expected ErrNoSession, got %v", err)
			}
			if !m.Current().Empty() {
				t.Fatal("session must stay empty")
			}
		})
	}
}

func TestSignInPersistsPairAndPopulatesSession(t *testing.T) {
	ctx := context.Background()
	access := mintToken(t, token.TypeAccess, 9, "5559998888", "admin", time.Now().Add(15*time.Minute))
	refresh := mintToken(t, token.TypeRefresh, 9, "5559998888", "", time.Now().Add(24*time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sign_in" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("phone_number") != "5559998888" || r.URL.Query().Get("password") != "hunter2" {
			_ = json.NewEncoder(w).Encode(map[string]any{"code": 401, "status": "unauthorized", "message": "wrong phone number or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"status": "OK",
			"result": map[string]string{"access_token": access, "refresh_token": refresh, "token_type": "Bearer"},
		})
	}))
	defer srv.Close()

	s := store.NewMemStore()
	m := newManager(t, srv.URL, s)

	sess, err := m.SignIn(ctx, "5559998888", "hunter2")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if sess.UserID != 9 || sess.PhoneNumber != "5559998888" || sess.Role != "admin" {
		t.Fatalf("unexpected session %+v", sess)
	}
	pair, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load persisted pair: %v", err)
	}
	if pair.Access != access || pair.Refresh != refresh {
		t.Fatal("persisted pair does not match issued tokens")
	}

	var domainErr *api.DomainError
	if _, err := m.SignIn(ctx, "5559998888", "wrong"); !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError for bad credentials, got %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	access := mintToken(t, token.TypeAccess, 2, "555", "staff", time.Now().Add(time.Hour))
	refresh := mintToken(t, token.TypeRefresh, 2, "555", "", time.Now().Add(time.Hour))
	if err := s.SetPair(ctx, store.Pair{Access: access, Refresh: refresh}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	m := newManager(t, "http://localhost:0", s)
	if _, err := m.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !m.Current().Empty() {
		t.Fatal("session must be empty after logout")
	}
	if _, err := s.Load(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected both tokens gone, got %v", err)
	}
}

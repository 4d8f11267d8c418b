package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func newTokenClientForTest(t *testing.T, handler http.Handler) *TokenClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewTokenClient(srv.URL, 5*time.Second, nil, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new token client: %v", err)
	}
	return c
}

func TestSignInSendsCredentialsAsQuery(t *testing.T) {
	var gotPhone, gotPassword string
	r := chi.NewRouter()
	r.Get("/sign_in", func(w http.ResponseWriter, req *http.Request) {
		gotPhone = req.URL.Query().Get("phone_number")
		gotPassword = req.URL.Query().Get("password")
		writeEnvelope(w, http.StatusOK, 200, "OK", "", TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"})
	})
	c := newTokenClientForTest(t, r)

	pair, err := c.SignIn(context.Background(), "5550001111", "hunter2")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if gotPhone != "5550001111" || gotPassword != "hunter2" {
		t.Fatalf("credentials not forwarded: phone=%q password=%q", gotPhone, gotPassword)
	}
	if pair.AccessToken != "a" || pair.RefreshToken != "r" {
		t.Fatalf("unexpected pair %+v", pair)
	}
}

func TestSignInRejectedCredentialsSurfaceAsDomainError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/sign_in", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusOK, 401, "Unauthorized", "invalid phone number or password", nil)
	})
	c := newTokenClientForTest(t, r)

	_, err := c.SignIn(context.Background(), "5550001111", "wrong")
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("want DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != 401 {
		t.Fatalf("code = %d", domainErr.Code)
	}
}

func TestSignInIncompleteResultIsTransportError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/sign_in", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, http.StatusOK, 200, "OK", "", TokenPair{AccessToken: "a"}) // no refresh token
	})
	c := newTokenClientForTest(t, r)

	_, err := c.SignIn(context.Background(), "5550001111", "hunter2")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
}

func TestRefreshHTTPUnauthorizedIsAuthError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/refresh_token", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTokenClientForTest(t, r)

	_, err := c.Refresh(context.Background(), "stale")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want AuthError, got %T: %v", err, err)
	}
	if authErr.Exhausted {
		t.Fatal("refresh endpoint 401 must not be marked exhausted by the token client")
	}
}

func TestRefreshKeepsRefreshTokenOutOfResult(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/refresh_token", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("refresh_token"); got != "r-1" {
			t.Errorf("refresh token not forwarded, got %q", got)
		}
		writeEnvelope(w, http.StatusOK, 200, "OK", "", TokenPair{AccessToken: "a-2", TokenType: "Bearer"})
	})
	c := newTokenClientForTest(t, r)

	pair, err := c.Refresh(context.Background(), "r-1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken != "a-2" || pair.RefreshToken != "" {
		t.Fatalf("unexpected pair %+v", pair)
	}
}

func TestTokenClientMalformedEnvelope(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/refresh_token", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "not a number"`))
	})
	c := newTokenClientForTest(t, r)

	_, err := c.Refresh(context.Background(), "r-1")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		t.Fatal("malformed body must not look like a backend rejection")
	}
}

func TestTokenClientNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	c, err := NewTokenClient(srv.URL, time.Second, nil, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new token client: %v", err)
	}
	_, err = c.SignIn(context.Background(), "5550001111", "hunter2")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("want TransportError, got %T: %v", err, err)
	}
}

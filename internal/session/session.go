// Package session owns the in-memory representation of the signed-in actor.
// The Manager is the only writer: sign-in, bootstrap and logout mutate it,
// everything else reads a snapshot through Current.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pawnbook/internal/api"
	"pawnbook/internal/store"
	"pawnbook/internal/token"
)

// Session is derived solely from the decoded access token; it is never
// fetched from the backend.
type Session struct {
	UserID      int64
	PhoneNumber string
	Role        string
}

func (s Session) Empty() bool { return s == Session{} }

var ErrNoSession = errors.New("no usable session")

type Manager struct {
	store  store.TokenStore
	tokens *api.TokenClient

	mu      sync.Mutex
	current Session
}

func NewManager(tokenStore store.TokenStore, tokens *api.TokenClient) *Manager {
	return &Manager{store: tokenStore, tokens: tokens}
}

// Current returns a read-only snapshot.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Bootstrap reconstructs the session from persisted tokens without any
// network round trip. An expired-but-present access token still produces a
// session: the first API call made with it will go through the refresh path.
// Missing tokens or an undecodable access token yield ErrNoSession.
func (m *Manager) Bootstrap(ctx context.Context) (Session, error) {
	pair, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, fmt.Errorf("bootstrap: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return Session{}, ErrNoSession
	}
	claims, err := token.DecodeAccess(pair.Access)
	if err != nil {
		return Session{}, ErrNoSession
	}
	s := sessionFromClaims(claims)
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// SignIn exchanges credentials for a token pair, persists it and populates
// the session from the new access token's claims.
func (m *Manager) SignIn(ctx context.Context, phoneNumber, password string) (Session, error) {
	pair, err := m.tokens.SignIn(ctx, phoneNumber, password)
	if err != nil {
		return Session{}, err
	}
	claims, err := token.DecodeAccess(pair.AccessToken)
	if err != nil {
		return Session{}, fmt.Errorf("sign in: decode issued token: %w", err)
	}
	if err := m.store.SetPair(ctx, store.Pair{Access: pair.AccessToken, Refresh: pair.RefreshToken}); err != nil {
		return Session{}, fmt.Errorf("sign in: persist tokens: %w", err)
	}
	s := sessionFromClaims(claims)
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return s, nil
}

// Logout clears both persisted tokens and the in-memory session.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Invalidate drops the in-memory session after the API client tore the
// stored tokens down on a failed refresh.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()
}

func sessionFromClaims(claims *token.Claims) Session {
	return Session{
		UserID:      claims.UserID,
		PhoneNumber: claims.PhoneNumber(),
		Role:        claims.Role,
	}
}

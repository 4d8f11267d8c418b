// Package store persists the access/refresh token pair between runs.
package store

import (
	"context"
	"errors"
	"sync"
)

// Pair holds the two persisted token strings. They live and die together:
// SetPair writes both, Clear removes both.
type Pair struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

var ErrNotFound = errors.New("no stored token pair")

// TokenStore is the single shared mutable resource of the client. Callers
// re-read it before every request and never keep a private copy; the last
// writer wins when refreshes race.
type TokenStore interface {
	// Load returns the stored pair or ErrNotFound when nothing is stored.
	Load(ctx context.Context) (Pair, error)
	// SetPair replaces both tokens, as after a successful sign-in.
	SetPair(ctx context.Context, p Pair) error
	// SetAccess replaces only the access token, as after a successful
	// refresh; the refresh token stays valid until its own expiry.
	// Returns ErrNotFound when no pair is stored.
	SetAccess(ctx context.Context, access string) error
	// Clear removes both tokens. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}

type MemStore struct {
	mu     sync.Mutex
	pair   Pair
	stored bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(context.Context) (Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stored {
		return Pair{}, ErrNotFound
	}
	return s.pair, nil
}

func (s *MemStore) SetPair(_ context.Context, p Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = p
	s.stored = true
	return nil
}

func (s *MemStore) SetAccess(_ context.Context, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stored {
		return ErrNotFound
	}
	s.pair.Access = access
	return nil
}

func (s *MemStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{}
	s.stored = false
	return nil
}

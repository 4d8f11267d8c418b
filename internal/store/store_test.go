package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func storesUnderTest(t *testing.T) map[string]TokenStore {
	t.Helper()
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return map[string]TokenStore{
		"mem":  NewMemStore(),
		"file": fileStore,
	}
}

func TestTokenStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("empty load: expected ErrNotFound, got %v", err)
			}
			if err := s.SetAccess(ctx, "orphan"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("set access on empty store: expected ErrNotFound, got %v", err)
			}

			if err := s.SetPair(ctx, Pair{Access: "a1", Refresh: "r1"}); err != nil {
				t.Fatalf("set pair: %v", err)
			}
			p, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if p.Access != "a1" || p.Refresh != "r1" {
				t.Fatalf("unexpected pair %+v", p)
			}

			if err := s.SetAccess(ctx, "a2"); err != nil {
				t.Fatalf("set access: %v", err)
			}
			p, err = s.Load(ctx)
			if err != nil {
				t.Fatalf("load after refresh: %v", err)
			}
			if p.Access != "a2" {
				t.Fatalf("access=%q want a2", p.Access)
			}
			if p.Refresh != "r1" {
				t.Fatal("refresh token must survive an access-only write")
			}

			if err := s.Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			// Both tokens must be gone together, never one of the two.
			if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("load after clear: expected ErrNotFound, got %v", err)
			}
			if err := s.Clear(ctx); err != nil {
				t.Fatalf("double clear must be a no-op: %v", err)
			}
		})
	}
}

func TestFileStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := first.SetPair(ctx, Pair{Access: "a", Refresh: "r"}); err != nil {
		t.Fatalf("set pair: %v", err)
	}

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	p, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if p.Access != "a" || p.Refresh != "r" {
		t.Fatalf("unexpected pair after reopen: %+v", p)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		t.Fatalf("token file mode=%v want 0600", mode)
	}
}

func TestFileStoreCorruptFileMeansNoSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt file load: expected ErrNotFound, got %v", err)
	}
}

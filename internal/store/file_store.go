package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the pair in a mode-0600 JSON file, the terminal equivalent
// of the browser's persisted storage. Writes go to a temp file in the same
// directory and land with a rename, so a crash mid-write never leaves one
// token without the other.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file store: create dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// DefaultPath places the token file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("file store: resolve config dir: %w", err)
	}
	return filepath.Join(dir, "pawnbook", "tokens.json"), nil
}

func (s *FileStore) Load(context.Context) (Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Pair{}, ErrNotFound
	}
	if err != nil {
		return Pair{}, fmt.Errorf("file store: read: %w", err)
	}
	var p Pair
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt file is indistinguishable from no session.
		return Pair{}, ErrNotFound
	}
	if p.Access == "" && p.Refresh == "" {
		return Pair{}, ErrNotFound
	}
	return p, nil
}

func (s *FileStore) SetPair(_ context.Context, p Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(p)
}

func (s *FileStore) SetAccess(ctx context.Context, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("file store: read: %w", err)
	}
	var p Pair
	if err := json.Unmarshal(data, &p); err != nil {
		return ErrNotFound
	}
	p.Access = access
	return s.write(p)
}

func (s *FileStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file store: clear: %w", err)
	}
	return nil
}

func (s *FileStore) write(p Pair) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file store: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}

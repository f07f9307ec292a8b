package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps objects on the local filesystem under a root directory and
// serves them through the application's /media handler.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore returns a LocalStore rooted at dir. Stored objects are
// addressable at baseURL + "/" + path.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return &LocalStore{
		root:    dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the directory objects are stored under.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) fullPath(path string) string {
	// Paths are built by ObjectPath/StagingPath from sanitized names, but
	// clean anyway so a crafted path cannot escape the root.
	return filepath.Join(s.root, filepath.Clean("/"+path))
}

func (s *LocalStore) Save(_ context.Context, path string, data []byte) (string, error) {
	full := s.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o600); err != nil {
		return "", err
	}
	return s.baseURL + "/" + path, nil
}

func (s *LocalStore) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.fullPath(path))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *LocalStore) Delete(_ context.Context, path string) error {
	err := os.Remove(s.fullPath(path))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

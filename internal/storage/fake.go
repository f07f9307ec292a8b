package storage

import (
	"context"
	"sync"
)

// FakeStore is an in-memory Store for tests. Set FailSave or FailDelete to
// exercise upload-failure and orphaned-image paths.
type FakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	FailSave   error
	FailDelete error
}

// NewFakeStore returns an empty in-memory store.
func NewFakeStore() *FakeStore {
	return &FakeStore{objects: make(map[string][]byte)}
}

func (s *FakeStore) Save(_ context.Context, path string, data []byte) (string, error) {
	if s.FailSave != nil {
		return "", s.FailSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[path] = buf
	return "fake://" + path, nil
}

func (s *FakeStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *FakeStore) Delete(_ context.Context, path string) error {
	if s.FailDelete != nil {
		return s.FailDelete
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return ErrNotFound
	}
	delete(s.objects, path)
	return nil
}

// Has reports whether an object exists at path.
func (s *FakeStore) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

// Len returns the number of stored objects.
func (s *FakeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

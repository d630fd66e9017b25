// Package memory is an in-process KV used by tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/Makepad-fr/impact/internal/store"
)

type Store struct {
	mu   sync.Mutex
	data map[string][]byte
	// Writes counts successful Put calls.
	Writes int
	// FailPut, when set, is returned from every Put.
	FailPut error
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut != nil {
		return s.FailPut
	}
	s.data[key] = append([]byte(nil), value...)
	s.Writes++
	return nil
}

func (s *Store) Close() error { return nil }

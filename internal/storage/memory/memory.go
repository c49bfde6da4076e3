// Package memory provides an in-process session store.
package memory

import (
	"context"
	"sync"

	"github.com/xtding233/gacha-backend/internal/session"
)

// Store keeps session records in a map. Records are copied on the way in
// and out so callers cannot alias stored bytes.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Get returns the record for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.records[key]
	if !ok {
		return nil, session.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put overwrites the record for key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the record for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

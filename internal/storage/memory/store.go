package memory

import (
	"context"
	"sync"

	"github.com/yndnr/fontsession/internal/storage"
)

// Store is an in-memory storage.Backend.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte

	writeErr error
	sets     int
	deletes  int
	closed   bool
}

// Option configures the Store.
type Option func(*Store)

// WithWriteError makes every Set and Delete fail with err, which is how a
// disabled or over-quota store looks to the availability probe.
func WithWriteError(err error) Option {
	return func(s *Store) {
		s.writeErr = err
	}
}

// New creates a new in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		values: make(map[string][]byte),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, storage.ErrClosed
	}
	v, ok := s.values[string(key)]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	// Return a copy to prevent external modification
	return append([]byte(nil), v...), nil
}

// Set stores a key-value pair.
func (s *Store) Set(_ context.Context, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[string(key)] = append([]byte(nil), value...)
	s.sets++
	return nil
}

// Delete removes a key.
func (s *Store) Delete(_ context.Context, key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.values, string(key))
	s.deletes++
	return nil
}

// Close marks the store closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Put seeds a raw value without counting it as a write.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
}

// Sets returns the number of successful Set calls.
func (s *Store) Sets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

// Deletes returns the number of successful Delete calls.
func (s *Store) Deletes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deletes
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

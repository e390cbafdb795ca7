package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ProbeKey is the sentinel written and removed to test store availability.
const ProbeKey = "__ls_test__"

// Store is the session key/value slot: exists/get/set/remove over a Backend.
//
// Availability is probed once, on first use, by writing then deleting
// ProbeKey. The answer is kept for the lifetime of the Store. When the probe
// fails every operation is a no-op.
type Store struct {
	backend Backend
	logger  *slog.Logger

	probeOnce sync.Once
	available bool
}

// NewStore wraps a backend. A nil backend yields a permanently unavailable store.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

// Exists reports whether the store is usable.
func (s *Store) Exists(ctx context.Context) bool {
	s.probeOnce.Do(func() {
		// The answer is kept for good; the first caller's deadline must not decide it.
		s.available = s.probe(context.WithoutCancel(ctx))
	})
	return s.available
}

func (s *Store) probe(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	if err := s.backend.Set(ctx, []byte(ProbeKey), []byte(ProbeKey)); err != nil {
		s.logger.WarnContext(ctx, "store probe write failed", "error", err)
		return false
	}
	if err := s.backend.Delete(ctx, []byte(ProbeKey)); err != nil {
		s.logger.WarnContext(ctx, "store probe delete failed", "error", err)
		return false
	}
	return true
}

// Get returns the value under key. Missing keys and read failures are both
// reported as absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if !s.Exists(ctx) {
		return nil, false
	}

	value, err := s.backend.Get(ctx, []byte(key))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.WarnContext(ctx, "store read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Set stores value under key. A nil value removes the key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return s.Remove(ctx, key)
	}
	if !s.Exists(ctx) {
		return nil
	}
	return s.backend.Set(ctx, []byte(key), value)
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if !s.Exists(ctx) {
		return nil
	}
	return s.backend.Delete(ctx, []byte(key))
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

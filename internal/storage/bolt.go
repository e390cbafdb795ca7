package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

// boltBucket holds every key written through the engine.
var boltBucket = []byte("fontsession")

// BoltEngine implements Backend on a single BoltDB file.
type BoltEngine struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewBoltEngine opens (or creates) the BoltDB file at cfg.Path.
func NewBoltEngine(cfg KVConfig, logger *slog.Logger) (*BoltEngine, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("bolt: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0750); err != nil {
		return nil, fmt.Errorf("bolt: create dir: %w", err)
	}

	// Another process holding the file lock must not block the caller.
	db, err := bolt.Open(cfg.Path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open db: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create bucket: %w", err)
	}

	logger.Debug("bolt engine started", "path", cfg.Path)

	return &BoltEngine{db: db, logger: logger}, nil
}

// Get retrieves a value by key.
func (e *BoltEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := e.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if v == nil {
			return ErrKeyNotFound
		}
		// Bolt values are only valid inside the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *BoltEngine) Set(ctx context.Context, key, value []byte) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, value)
	})
}

// Delete removes a key.
func (e *BoltEngine) Delete(ctx context.Context, key []byte) error {
	return e.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete(key)
	})
}

// Close closes the database file.
func (e *BoltEngine) Close() error {
	if err := e.db.Close(); err != nil {
		return fmt.Errorf("bolt: close: %w", err)
	}
	return nil
}

// Package storage provides key/value storage for fontsession.
//
// This file defines the Backend interface implemented by every embedded
// engine, and the configuration used to open one.
package storage

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrClosed        = errors.New("kv engine closed")
	ErrUnknownEngine = errors.New("unknown kv engine")
)

// Engine names.
const (
	EngineMemory = "memory"
	EngineFile   = "file"
	EngineBadger = "badger"
	EngineBolt   = "bolt"
	EngineSQLite = "sqlite"
)

// Backend is the storage primitive under the session store.
//
// Implementations must be safe for concurrent use and answer synchronously.
type Backend interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if key doesn't exist.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set stores a key-value pair, replacing any previous value.
	Set(ctx context.Context, key, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key []byte) error

	// Close releases the backend.
	Close() error
}

// KVConfig configures an embedded KV engine.
type KVConfig struct {
	// Engine specifies the engine type ("memory", "file", "badger", "bolt", "sqlite").
	// Default: "file"
	Engine string

	// Path is the storage directory (file, badger) or database file (bolt, sqlite).
	Path string

	// Badger-specific configuration
	Badger BadgerConfig

	// SQLite-specific configuration
	SQLite SQLiteConfig

	// File-specific configuration
	File FileConfig
}

// BadgerConfig contains Badger-specific tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the GC discard ratio threshold (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// SyncWrites enables sync writes (fsync after each write).
	// Default: true, the session document is written rarely.
	SyncWrites bool
}

// SQLiteConfig contains SQLite-specific parameters.
type SQLiteConfig struct {
	// BusyTimeoutMS is PRAGMA busy_timeout in milliseconds.
	// Default: 5000
	BusyTimeoutMS int
}

// FileConfig contains file engine parameters.
type FileConfig struct {
	// Passphrase enables at-rest encryption when non-empty.
	Passphrase string
}

// DefaultKVConfig returns the default KV configuration.
func DefaultKVConfig(path string) KVConfig {
	return KVConfig{
		Engine: EngineFile,
		Path:   path,
		Badger: DefaultBadgerConfig(),
		SQLite: SQLiteConfig{BusyTimeoutMS: 5000},
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:  "10m",
		GCThreshold: 0.5,
		SyncWrites:  true,
	}
}

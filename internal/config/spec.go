// Package config defines the fontsession configuration structure.
package config

import "time"

// AppConfig is the root configuration for fontsession.
type AppConfig struct {
	Store     StoreSection     `koanf:"store" yaml:"store" json:"store"`
	Session   SessionSection   `koanf:"session" yaml:"session" json:"session"`
	Workspace WorkspaceSection `koanf:"workspace" yaml:"workspace" json:"workspace"`
	Log       LogSection       `koanf:"log" yaml:"log" json:"log"`
	Metrics   MetricsSection   `koanf:"metrics" yaml:"metrics" json:"metrics"`
}

// StoreSection configures the storage backend.
type StoreSection struct {
	// Engine is one of memory, file, badger, bolt, sqlite.
	Engine string `koanf:"engine" yaml:"engine" json:"engine"`

	// Path is a directory (file, badger) or database file (bolt, sqlite).
	// For bolt and sqlite a directory path gets a default file name appended.
	Path string `koanf:"path" yaml:"path" json:"path"`

	// Passphrase enables encryption at rest for the file engine.
	Passphrase string `koanf:"passphrase" yaml:"passphrase,omitempty" json:"passphrase,omitempty"`

	Badger BadgerSection `koanf:"badger" yaml:"badger" json:"badger"`
	SQLite SQLiteSection `koanf:"sqlite" yaml:"sqlite" json:"sqlite"`
}

// BadgerSection tunes the badger engine.
type BadgerSection struct {
	GCInterval  time.Duration `koanf:"gc_interval" yaml:"gc_interval" json:"gc_interval"`
	GCThreshold float64       `koanf:"gc_threshold" yaml:"gc_threshold" json:"gc_threshold"`
	SyncWrites  bool          `koanf:"sync_writes" yaml:"sync_writes" json:"sync_writes"`
}

// SQLiteSection tunes the sqlite engine.
type SQLiteSection struct {
	BusyTimeoutMS int `koanf:"busy_timeout_ms" yaml:"busy_timeout_ms" json:"busy_timeout_ms"`
}

// SessionSection configures session persistence.
type SessionSection struct {
	// Key is the storage key holding the session document.
	Key string `koanf:"key" yaml:"key" json:"key"`

	// SaveDelay is the debounce window for change-triggered saves.
	SaveDelay time.Duration `koanf:"save_delay" yaml:"save_delay" json:"save_delay"`

	// CustomFont is the name of the user-editable font.
	CustomFont string `koanf:"custom_font" yaml:"custom_font" json:"custom_font"`
}

// WorkspaceSection locates the font manifest.
type WorkspaceSection struct {
	Manifest string `koanf:"manifest" yaml:"manifest" json:"manifest"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// MetricsSection configures in-process metrics.
type MetricsSection struct {
	Enabled bool `koanf:"enabled" yaml:"enabled" json:"enabled"`

	// Dump writes the Prometheus text exposition to stderr on exit.
	Dump bool `koanf:"dump" yaml:"dump" json:"dump"`
}

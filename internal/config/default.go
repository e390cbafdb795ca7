// Package config defines the fontsession configuration structure.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/storage"
)

// Default configuration values.
const (
	DefaultEngine        = storage.EngineFile
	DefaultGCInterval    = 10 * time.Minute
	DefaultGCThreshold   = 0.5
	DefaultBusyTimeoutMS = 5000
	DefaultSaveDelay     = 500 * time.Millisecond

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	appName = "fontsession"
)

// Default returns the default configuration.
func Default() *AppConfig {
	return &AppConfig{
		Store: StoreSection{
			Engine: DefaultEngine,
			Path:   DefaultStatePath(),
			Badger: BadgerSection{
				GCInterval:  DefaultGCInterval,
				GCThreshold: DefaultGCThreshold,
				SyncWrites:  true,
			},
			SQLite: SQLiteSection{
				BusyTimeoutMS: DefaultBusyTimeoutMS,
			},
		},
		Session: SessionSection{
			Key:        domain.DefaultStorageKey,
			SaveDelay:  DefaultSaveDelay,
			CustomFont: domain.DefaultCustomFontName,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// DefaultStatePath returns $XDG_STATE_HOME/fontsession, falling back to
// ~/.local/state/fontsession.
func DefaultStatePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// KVConfig converts the store section into a storage.KVConfig.
// bolt and sqlite take a file; a path without an extension is treated as
// the state directory.
func (s StoreSection) KVConfig() storage.KVConfig {
	cfg := storage.DefaultKVConfig(s.Path)
	cfg.Engine = s.Engine
	cfg.File.Passphrase = s.Passphrase
	cfg.Badger = storage.BadgerConfig{
		GCInterval:  s.Badger.GCInterval.String(),
		GCThreshold: s.Badger.GCThreshold,
		SyncWrites:  s.Badger.SyncWrites,
	}
	cfg.SQLite.BusyTimeoutMS = s.SQLite.BusyTimeoutMS

	switch s.Engine {
	case storage.EngineBolt:
		if filepath.Ext(s.Path) == "" {
			cfg.Path = filepath.Join(s.Path, "sessions.db")
		}
	case storage.EngineSQLite:
		if s.Path != ":memory:" && filepath.Ext(s.Path) == "" {
			cfg.Path = filepath.Join(s.Path, "sessions.sqlite")
		}
	}
	return cfg
}

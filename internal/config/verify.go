// Package config defines the fontsession configuration structure.
package config

import (
	"fmt"
	"strings"

	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/storage"
)

var knownEngines = []string{
	storage.EngineMemory,
	storage.EngineFile,
	storage.EngineBadger,
	storage.EngineBolt,
	storage.EngineSQLite,
}

// Verify validates the configuration.
func Verify(cfg *AppConfig) error {
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	if err := verifySession(&cfg.Session); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyStore(cfg *StoreSection) error {
	known := false
	for _, e := range knownEngines {
		if cfg.Engine == e {
			known = true
			break
		}
	}
	if !known {
		return invalid("store.engine", fmt.Sprintf("%q is not one of %s", cfg.Engine, strings.Join(knownEngines, ", ")))
	}
	if cfg.Engine != storage.EngineMemory && cfg.Path == "" {
		return invalid("store.path", "required for engine "+cfg.Engine)
	}
	if cfg.Passphrase != "" && cfg.Engine != storage.EngineFile {
		return invalid("store.passphrase", "only the file engine supports encryption")
	}
	if cfg.Engine == storage.EngineBadger {
		if cfg.Badger.GCThreshold <= 0 || cfg.Badger.GCThreshold >= 1 {
			return invalid("store.badger.gc_threshold", "must be between 0 and 1")
		}
		if cfg.Badger.GCInterval <= 0 {
			return invalid("store.badger.gc_interval", "must be positive")
		}
	}
	if cfg.SQLite.BusyTimeoutMS < 0 {
		return invalid("store.sqlite.busy_timeout_ms", "must not be negative")
	}
	return nil
}

func verifySession(cfg *SessionSection) error {
	if cfg.Key == "" {
		return invalid("session.key", "must not be empty")
	}
	if cfg.Key == "__ls_test__" {
		return invalid("session.key", "collides with the availability probe key")
	}
	if cfg.SaveDelay <= 0 {
		return invalid("session.save_delay", "must be positive")
	}
	if cfg.CustomFont == "" {
		return invalid("session.custom_font", "must not be empty")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", fmt.Sprintf("unknown level %q", cfg.Level))
	}
	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		return invalid("log.format", fmt.Sprintf("unknown format %q", cfg.Format))
	}
	return nil
}

func invalid(field, msg string) error {
	return domain.ErrInvalidConfig.WithDetails(field + ": " + msg)
}

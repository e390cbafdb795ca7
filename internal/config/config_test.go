package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/storage"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Engine != DefaultEngine {
		t.Errorf("Store.Engine = %q, want %q", cfg.Store.Engine, DefaultEngine)
	}
	if cfg.Session.Key != domain.DefaultStorageKey {
		t.Errorf("Session.Key = %q, want %q", cfg.Session.Key, domain.DefaultStorageKey)
	}
	if cfg.Session.SaveDelay != DefaultSaveDelay {
		t.Errorf("Session.SaveDelay = %v, want %v", cfg.Session.SaveDelay, DefaultSaveDelay)
	}
	if cfg.Session.CustomFont != domain.DefaultCustomFontName {
		t.Errorf("Session.CustomFont = %q", cfg.Session.CustomFont)
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path should have a default")
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestDefaultStatePath_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	if got := DefaultStatePath(); got != filepath.Join("/xdg/state", "fontsession") {
		t.Errorf("DefaultStatePath() = %q", got)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid default", func(c *AppConfig) {}, ""},
		{"unknown engine", func(c *AppConfig) { c.Store.Engine = "redis" }, "store.engine"},
		{"memory needs no path", func(c *AppConfig) { c.Store.Engine = storage.EngineMemory; c.Store.Path = "" }, ""},
		{"file needs path", func(c *AppConfig) { c.Store.Path = "" }, "store.path"},
		{"passphrase on bolt", func(c *AppConfig) { c.Store.Engine = storage.EngineBolt; c.Store.Passphrase = "x" }, "store.passphrase"},
		{"badger threshold", func(c *AppConfig) { c.Store.Engine = storage.EngineBadger; c.Store.Badger.GCThreshold = 1.5 }, "gc_threshold"},
		{"empty key", func(c *AppConfig) { c.Session.Key = "" }, "session.key"},
		{"probe key", func(c *AppConfig) { c.Session.Key = storage.ProbeKey }, "session.key"},
		{"zero delay", func(c *AppConfig) { c.Session.SaveDelay = 0 }, "save_delay"},
		{"empty custom font", func(c *AppConfig) { c.Session.CustomFont = "" }, "custom_font"},
		{"bad log level", func(c *AppConfig) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *AppConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Verify() = nil, want error mentioning %q", tt.wantErr)
			}
			if !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Verify() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Store.Passphrase = "correct horse battery"

	sanitized := Sanitize(cfg)

	if cfg.Store.Passphrase != "correct horse battery" {
		t.Error("Original config should not be modified")
	}
	if sanitized.Store.Passphrase == cfg.Store.Passphrase {
		t.Error("Sanitized config should mask the passphrase")
	}
	if len(sanitized.Store.Passphrase) != len(cfg.Store.Passphrase) {
		t.Errorf("masked length = %d, want %d", len(sanitized.Store.Passphrase), len(cfg.Store.Passphrase))
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "****"},
		{"abcd", "****"},
		{"abcdef", "ab**ef"},
	}
	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreSection_KVConfig(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		path     string
		wantPath string
	}{
		{"file keeps dir", storage.EngineFile, "/state", "/state"},
		{"bolt appends file", storage.EngineBolt, "/state", "/state/sessions.db"},
		{"bolt keeps file", storage.EngineBolt, "/state/my.bolt", "/state/my.bolt"},
		{"sqlite appends file", storage.EngineSQLite, "/state", "/state/sessions.sqlite"},
		{"sqlite memory", storage.EngineSQLite, ":memory:", ":memory:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default().Store
			s.Engine = tt.engine
			s.Path = tt.path

			kv := s.KVConfig()
			if kv.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", kv.Path, tt.wantPath)
			}
			if kv.Engine != tt.engine {
				t.Errorf("Engine = %q, want %q", kv.Engine, tt.engine)
			}
		})
	}

	s := Default().Store
	kv := s.KVConfig()
	if kv.Badger.GCInterval != "10m0s" {
		t.Errorf("Badger.GCInterval = %q, want 10m0s", kv.Badger.GCInterval)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  engine: bolt
  path: /tmp/fs
session:
  save_delay: 2s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FONTSESSION_SESSION__KEY", "env:key")

	cfg, err := Load(path, map[string]any{
		"store.engine":       "sqlite",
		"workspace.manifest": "fonts.yaml",
		"log.format":         nil,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Engine != "sqlite" {
		t.Errorf("Engine = %q, flag should win", cfg.Store.Engine)
	}
	if cfg.Store.Path != "/tmp/fs" {
		t.Errorf("Path = %q, want from file", cfg.Store.Path)
	}
	if cfg.Session.SaveDelay != 2*time.Second {
		t.Errorf("SaveDelay = %v, want 2s", cfg.Session.SaveDelay)
	}
	if cfg.Session.Key != "env:key" {
		t.Errorf("Key = %q, want from env", cfg.Session.Key)
	}
	if cfg.Session.CustomFont != domain.DefaultCustomFontName {
		t.Errorf("CustomFont = %q, want default", cfg.Session.CustomFont)
	}
	if cfg.Workspace.Manifest != "fonts.yaml" {
		t.Errorf("Manifest = %q", cfg.Workspace.Manifest)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Format = %q, want default", cfg.Log.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load("", map[string]any{"store.engine": "etcd"})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml", nil); err == nil {
		t.Error("Load() should fail for a missing explicit file")
	}
}

package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Store struct {
		Engine string `koanf:"engine"`
		Path   string `koanf:"path"`
		Badger struct {
			SyncWrites bool `koanf:"sync_writes"`
		} `koanf:"badger"`
	} `koanf:"store"`
	Session struct {
		Key       string        `koanf:"key"`
		SaveDelay time.Duration `koanf:"save_delay"`
	} `koanf:"session"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
	if l.IsLoaded() {
		t.Error("IsLoaded() = true before Load")
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.FilePath() != "/path/to/config.yaml" {
		t.Errorf("FilePath() = %q", l.FilePath())
	}
}

func TestLoader_Load_File(t *testing.T) {
	path := writeConfig(t, `
store:
  engine: bolt
  badger:
    sync_writes: true
session:
  save_delay: 750ms
`)

	l := NewLoader(WithConfigFile(path))

	var cfg testConfig
	cfg.Session.Key = "default-key"
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Engine != "bolt" {
		t.Errorf("Engine = %q, want bolt", cfg.Store.Engine)
	}
	if !cfg.Store.Badger.SyncWrites {
		t.Error("SyncWrites should be true")
	}
	if cfg.Session.SaveDelay != 750*time.Millisecond {
		t.Errorf("SaveDelay = %v, want 750ms", cfg.Session.SaveDelay)
	}
	// Keys absent from every source keep their preset value.
	if cfg.Session.Key != "default-key" {
		t.Errorf("Key = %q, want default-key", cfg.Session.Key)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should fail for missing file")
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("FONTSESSION_STORE__ENGINE", "sqlite")
	t.Setenv("FONTSESSION_SESSION__SAVE_DELAY", "2s")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if got := l.GetString("store.engine"); got != "sqlite" {
		t.Errorf("store.engine = %q, want sqlite", got)
	}
	if got := l.GetString("session.save_delay"); got != "2s" {
		t.Errorf("session.save_delay = %q, want 2s", got)
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_STORE__PATH", "/tmp/x")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := l.GetString("store.path"); got != "/tmp/x" {
		t.Errorf("store.path = %q, want /tmp/x", got)
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeConfig(t, `
store:
  engine: bolt
  path: /from/file
session:
  key: file-key
`)
	t.Setenv("FONTSESSION_STORE__ENGINE", "badger")
	t.Setenv("FONTSESSION_SESSION__KEY", "env-key")

	l := NewLoader(WithConfigFile(path))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Engine != "badger" {
		t.Errorf("Engine = %q, env should override file", cfg.Store.Engine)
	}

	// Flags override env.
	if err := l.LoadMap(map[string]any{
		"session.key": "flag-key",
		"store.path":  nil,
	}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Session.Key != "flag-key" {
		t.Errorf("Key = %q, want flag-key", cfg.Session.Key)
	}
	if cfg.Store.Path != "/from/file" {
		t.Errorf("Path = %q, nil flag should not override", cfg.Store.Path)
	}
	if cfg.Store.Engine != "badger" {
		t.Errorf("Engine = %q, sibling of a flag key was lost", cfg.Store.Engine)
	}
}

func TestMapProvider_Read(t *testing.T) {
	m := mapProvider{"a.b.c": 1, "a.d": "x", "e": true}

	out, err := m.Read()
	if err != nil {
		t.Fatal(err)
	}

	a, ok := out["a"].(map[string]any)
	if !ok {
		t.Fatalf("a = %T, want map", out["a"])
	}
	if a["d"] != "x" {
		t.Errorf("a.d = %v", a["d"])
	}
	if b, _ := a["b"].(map[string]any); b["c"] != 1 {
		t.Errorf("a.b.c = %v", b["c"])
	}
	if out["e"] != true {
		t.Errorf("e = %v", out["e"])
	}

	if _, err := m.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}

func TestLoader_Keys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"store.engine": "file", "log.level": "debug"}); err != nil {
		t.Fatal(err)
	}
	if got := len(l.Keys()); got != 2 {
		t.Errorf("len(Keys()) = %d, want 2", got)
	}
	if l.Get("log.level") != "debug" {
		t.Errorf("Get(log.level) = %v", l.Get("log.level"))
	}
}

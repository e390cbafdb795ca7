package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yndnr/fontsession/internal/storage"
	"github.com/yndnr/fontsession/internal/storage/memory"
)

func TestBackends(t *testing.T) {
	open := map[string]func(t *testing.T) storage.Backend{
		storage.EngineMemory: func(t *testing.T) storage.Backend {
			return memory.New()
		},
		storage.EngineFile: func(t *testing.T) storage.Backend {
			e, err := storage.NewFileEngine(storage.DefaultKVConfig(t.TempDir()), nil)
			if err != nil {
				t.Fatal(err)
			}
			return e
		},
		storage.EngineBolt: func(t *testing.T) storage.Backend {
			cfg := storage.DefaultKVConfig(filepath.Join(t.TempDir(), "sessions.db"))
			e, err := storage.NewBoltEngine(cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			return e
		},
		storage.EngineSQLite: func(t *testing.T) storage.Backend {
			cfg := storage.DefaultKVConfig(filepath.Join(t.TempDir(), "sessions.sqlite"))
			e, err := storage.NewSQLiteEngine(cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			return e
		},
		storage.EngineBadger: func(t *testing.T) storage.Backend {
			cfg := storage.DefaultKVConfig(t.TempDir())
			cfg.Badger.GCInterval = "1h"
			cfg.Badger.SyncWrites = false
			e, err := storage.NewBadgerEngine(cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			return e
		},
	}

	for name, openFn := range open {
		t.Run(name, func(t *testing.T) {
			b := openFn(t)
			defer b.Close()
			ctx := context.Background()
			key := []byte("fontello:sessions:v4")

			if _, err := b.Get(ctx, key); !errors.Is(err, storage.ErrKeyNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
			}

			if err := b.Set(ctx, key, []byte("one")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := b.Set(ctx, key, []byte("two")); err != nil {
				t.Fatalf("Set(overwrite) error = %v", err)
			}

			got, err := b.Get(ctx, key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "two" {
				t.Errorf("Get() = %q, want %q", got, "two")
			}

			if err := b.Delete(ctx, key); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := b.Get(ctx, key); !errors.Is(err, storage.ErrKeyNotFound) {
				t.Errorf("Get(deleted) error = %v, want ErrKeyNotFound", err)
			}

			if err := b.Delete(ctx, []byte("never-set")); err != nil {
				t.Errorf("Delete(missing) error = %v", err)
			}
		})
	}
}

func TestSQLiteEngine_InMemory(t *testing.T) {
	cfg := storage.DefaultKVConfig(":memory:")
	e, err := storage.NewSQLiteEngine(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	ctx := context.Background()
	if err := e.Set(ctx, []byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, err := e.Get(ctx, []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q", got)
	}
}

func TestBoltEngine_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	e, err := storage.NewBoltEngine(storage.DefaultKVConfig(path), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Set(ctx, []byte("k"), []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	e, err = storage.NewBoltEngine(storage.DefaultKVConfig(path), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	got, err := e.Get(ctx, []byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get() = %q", got)
	}
}

package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yndnr/fontsession/internal/storage"
	"github.com/yndnr/fontsession/internal/storage/memory"
)

const testKey = "fontello:sessions:v4"

func TestStore_Probe(t *testing.T) {
	backend := memory.New()
	store := storage.NewStore(backend, nil)
	ctx := context.Background()

	if !store.Exists(ctx) {
		t.Fatal("Exists() = false for a writable backend")
	}
	if backend.Sets() != 1 || backend.Deletes() != 1 {
		t.Errorf("probe wrote %d/%d, want 1 set and 1 delete", backend.Sets(), backend.Deletes())
	}
	if backend.Len() != 0 {
		t.Error("probe key left behind")
	}

	// The answer is memoized.
	store.Exists(ctx)
	if backend.Sets() != 1 {
		t.Errorf("probe ran again: %d sets", backend.Sets())
	}
}

func TestStore_ProbeIgnoresCanceledContext(t *testing.T) {
	cfg := storage.DefaultKVConfig(filepath.Join(t.TempDir(), "sessions.sqlite"))
	backend, err := storage.NewSQLiteEngine(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewStore(backend, nil)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if !store.Exists(ctx) {
		t.Fatal("Exists() = false when the first caller's context was canceled")
	}
	if err := store.Set(context.Background(), testKey, []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok := store.Get(context.Background(), testKey); !ok || string(v) != "v" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
}

func TestStore_Unavailable(t *testing.T) {
	backend := memory.New(memory.WithWriteError(errors.New("quota exceeded")))
	backend.Put(testKey, []byte("stale"))
	store := storage.NewStore(backend, nil)
	ctx := context.Background()

	if store.Exists(ctx) {
		t.Fatal("Exists() = true for a failing backend")
	}
	if _, ok := store.Get(ctx, testKey); ok {
		t.Error("Get() on unavailable store should report absent")
	}
	if err := store.Set(ctx, testKey, []byte("new")); err != nil {
		t.Errorf("Set() on unavailable store = %v, want nil", err)
	}
	if err := store.Remove(ctx, testKey); err != nil {
		t.Errorf("Remove() on unavailable store = %v, want nil", err)
	}
}

func TestStore_NilBackend(t *testing.T) {
	store := storage.NewStore(nil, nil)
	ctx := context.Background()

	if store.Exists(ctx) {
		t.Error("Exists() = true with nil backend")
	}
	if err := store.Set(ctx, testKey, []byte("v")); err != nil {
		t.Errorf("Set() = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestStore_GetSetRemove(t *testing.T) {
	backend := memory.New()
	store := storage.NewStore(backend, nil)
	ctx := context.Background()

	if _, ok := store.Get(ctx, testKey); ok {
		t.Error("Get() before Set reports present")
	}

	if err := store.Set(ctx, testKey, []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	got, ok := store.Get(ctx, testKey)
	if !ok || string(got) != `{"a":1}` {
		t.Errorf("Get() = %q, %v", got, ok)
	}

	// A nil value removes the key.
	if err := store.Set(ctx, testKey, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Get(ctx, testKey); ok {
		t.Error("Set(nil) did not remove the key")
	}

	if err := store.Set(ctx, testKey, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, testKey); err != nil {
		t.Fatal(err)
	}
	if backend.Len() != 0 {
		t.Errorf("Len() = %d after Remove", backend.Len())
	}
}

func TestStore_Close(t *testing.T) {
	backend := memory.New()
	store := storage.NewStore(backend, nil)

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := backend.Get(context.Background(), []byte("k")); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("backend Get after Close = %v, want ErrClosed", err)
	}
}

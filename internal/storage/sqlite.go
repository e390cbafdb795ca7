package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   BLOB PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteEngine implements Backend on a single-table SQLite database.
type SQLiteEngine struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteEngine opens (or creates) the SQLite database at cfg.Path.
// The special path ":memory:" opens a private in-memory database.
func NewSQLiteEngine(cfg KVConfig, logger *slog.Logger) (*SQLiteEngine, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection: ":memory:" databases are per-connection, and writes are rare.
	db.SetMaxOpenConns(1)

	busy := cfg.SQLite.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}

	logger.Debug("sqlite engine started", "path", cfg.Path)

	return &SQLiteEngine{db: db, logger: logger}, nil
}

// Get retrieves a value by key.
func (e *SQLiteEngine) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := e.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get: %w", err)
	}
	return value, nil
}

// Set stores a key-value pair.
func (e *SQLiteEngine) Set(ctx context.Context, key, value []byte) error {
	_, err := e.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite: set: %w", err)
	}
	return nil
}

// Delete removes a key.
func (e *SQLiteEngine) Delete(ctx context.Context, key []byte) error {
	if _, err := e.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete: %w", err)
	}
	return nil
}

// Close closes the database.
func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}

// Package sqlite stores key-value pairs in a single SQLite table using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"
)

// DefaultFile is the database file name used when Config.Path is a directory.
const DefaultFile = "notepad.db"

// Config holds the configuration for the SQLite store.
type Config struct {
	// Path is the database file, or a directory (existing, or without an
	// extension) that will hold DefaultFile.
	Path   string
	Logger *slog.Logger
}

// Store implements a key-value backend on an SQLite table.
type Store struct {
	conn   *sql.DB
	file   string
	logger *slog.Logger

	reads  atomic.Int64
	writes atomic.Int64
}

// Open opens (or creates) the database and runs migrations.
func Open(config Config) (*Store, error) {
	file := config.Path
	if file == "" {
		return nil, errors.New("sqlite: empty path")
	}
	if info, err := os.Stat(file); (err == nil && info.IsDir()) || filepath.Ext(file) == "" {
		file = filepath.Join(file, DefaultFile)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", file+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{conn: conn, file: file, logger: logger}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("sqlite store opened", "file", file)
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// File returns the database file path.
func (s *Store) File() string {
	return s.file
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.reads.Add(1)

	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	s.writes.Add(1)
	return nil
}

// UpdatedAt returns when key was last written.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var ms int64
	err := s.conn.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	File   string `json:"file"`
	Reads  int64  `json:"reads"`
	Writes int64  `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{File: s.file, Reads: s.reads.Load(), Writes: s.writes.Load()}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

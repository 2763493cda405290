// Package fs stores each key as a JSON file in a directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
)

// Ext is the extension of every value file.
const Ext = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path   string
	Perm   os.FileMode // defaults to 0644
	Logger *slog.Logger
}

// Store implements a key-value backend on top of a directory.
// Writes go through a temp file and a rename, so a crash never leaves a torn value.
type Store struct {
	path   string
	perm   os.FileMode
	logger *slog.Logger

	mu     sync.Mutex // serializes writers of the same directory
	reads  int
	writes int
}

// New creates a filesystem store rooted at config.Path. The directory is
// created lazily on the first write.
func New(config Config) *Store {
	perm := config.Perm
	if perm == 0 {
		perm = 0644
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: config.Path, perm: perm, logger: logger}
}

// Path returns the root directory.
func (s *Store) Path() string {
	return s.path
}

// Get reads the file for key. A missing file is reported as not found.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	filename, err := s.filename(key)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.reads++
	s.mu.Unlock()

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, true, nil
}

// Set atomically replaces the file for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.path, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if err := writeFileAtomic(filename, value, s.perm); err != nil {
		return err
	}
	s.writes++
	s.logger.Debug("value written", "file", filename, "bytes", len(value))
	return nil
}

// filename maps a key to a flat file inside the store directory.
func (s *Store) filename(key string) (string, error) {
	name := SanitizeKey(key)
	if name == "" {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.path, name+Ext), nil
}

// SanitizeKey turns key into a safe file name: path separators and anything
// outside [A-Za-z0-9._-] become '_', and leading dots are dropped.
func SanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Path   string `json:"path"`
	Reads  int    `json:"reads"`
	Writes int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StoreState{Path: s.path, Reads: s.reads, Writes: s.writes}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

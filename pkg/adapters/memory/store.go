// Package memory provides an in-process key-value backend.
// It is the default for tests and can inject latency and failures.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/introspection"
)

// Store is a map-backed key-value store safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	data    map[string][]byte
	getErr  error
	setErr  error
	latency func(key string, value []byte) time.Duration
	gets    int
	sets    int
}

// New creates an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	s.gets++
	err := s.getErr
	v, ok := s.data[key]
	s.mu.Unlock()

	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key, after any configured latency.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.sets++
	err := s.setErr
	latency := s.latency
	s.mu.Unlock()

	if latency != nil {
		if d := latency(key, value); d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err != nil {
		return err
	}

	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	return nil
}

// FailWith makes subsequent Get and Set calls return the given errors. Nil clears.
func (s *Store) FailWith(getErr, setErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = getErr
	s.setErr = setErr
}

// SetLatency delays every Set by fn(key, value).
func (s *Store) SetLatency(fn func(key string, value []byte) time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = fn
}

// Raw returns the stored bytes without counting as a Get.
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Keys int `json:"keys"`
	Gets int `json:"gets"`
	Sets int `json:"sets"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoreState{Keys: len(s.data), Gets: s.gets, Sets: s.sets}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

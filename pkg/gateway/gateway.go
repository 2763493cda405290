// Package gateway adapts any key-value backend to core.Gateway by storing the
// whole collection under a single key as one JSON blob.
package gateway

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notepad/pkg/core"
)

// DefaultKey is the key the collection is stored under.
const DefaultKey = "notes"

// KeyValue is the contract of a persistence backend.
// Set overwrites the value atomically from the caller's perspective.
type KeyValue interface {
	// Get returns found=false and a nil error when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Config holds the configuration for a Gateway.
type Config struct {
	Key    string // defaults to DefaultKey
	Logger *slog.Logger
}

// Gateway implements core.Gateway on top of a KeyValue backend.
// It does no caching: a Load during an in-flight Save may not observe it.
type Gateway struct {
	kv     KeyValue
	key    string
	logger *slog.Logger
}

// New creates a Gateway over kv.
func New(kv KeyValue, config Config) *Gateway {
	key := config.Key
	if key == "" {
		key = DefaultKey
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{kv: kv, key: key, logger: logger}
}

// Load fetches the stored collection.
// A missing key or an undecodable value yields an empty collection.
func (g *Gateway) Load(ctx context.Context) (core.Collection, error) {
	data, found, err := g.kv.Get(ctx, g.key)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Key: g.key, Err: err}
	}
	if !found {
		g.logger.Debug("no stored notes", "key", g.key)
		return core.Collection{}, nil
	}

	c, err := Decode(data)
	if err != nil {
		g.logger.Warn("discarding undecodable notes", "key", g.key, "bytes", len(data), "error", err)
		return core.Collection{}, nil
	}
	return c, nil
}

// Save encodes the full collection and overwrites the key.
func (g *Gateway) Save(ctx context.Context, c core.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return &core.PersistenceError{Op: "save", Key: g.key, Err: err}
	}
	if err := g.kv.Set(ctx, g.key, data); err != nil {
		return &core.PersistenceError{Op: "save", Key: g.key, Err: err}
	}
	return nil
}

// Close closes the backend if it holds resources (e.g. a database handle).
func (g *Gateway) Close() error {
	if c, ok := g.kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Key returns the key the collection is stored under.
func (g *Gateway) Key() string {
	return g.key
}

// GatewayState exposes internal state for observability.
type GatewayState struct {
	Key         string `json:"key"`
	BackendType string `json:"backend_type"`
	Backend     any    `json:"backend,omitempty"`
}

// State implements introspection.Introspectable.
func (g *Gateway) State() any {
	state := GatewayState{Key: g.key, BackendType: "unknown"}
	if comp, ok := g.kv.(introspection.Component); ok {
		state.BackendType = comp.ComponentType()
	}
	if intro, ok := g.kv.(introspection.Introspectable); ok {
		state.Backend = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (g *Gateway) ComponentType() string {
	return "kv-gateway"
}

var _ core.Gateway = (*Gateway)(nil)
var _ introspection.Introspectable = (*Gateway)(nil)
var _ introspection.Component = (*Gateway)(nil)

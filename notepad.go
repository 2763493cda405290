package notepad

import (
	"context"
	"log/slog"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/adapters/s3"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
	"github.com/aretw0/notepad/pkg/session"
)

// --- Types ---

// Store is the note store.
type Store = core.Store

// Note is a single note.
type Note = core.Note

// Collection is an ordered list of notes.
type Collection = core.Collection

// Session is the single-record edit session.
type Session = session.Session

// S3Config configures the s3 backend.
type S3Config = s3.Config

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// Backend names accepted by WithBackend.
const (
	BackendMemory = platform.BackendMemory
	BackendFS     = platform.BackendFS
	BackendSQLite = platform.BackendSQLite
	BackendS3     = platform.BackendS3
)

// WithBackend selects the persistence backend by name.
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithPath sets the data location of the fs and sqlite backends.
func WithPath(path string) Option {
	return platform.WithPath(path)
}

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKeyValue injects a custom key-value backend.
func WithKeyValue(kv gateway.KeyValue) Option {
	return platform.WithKeyValue(kv)
}

// WithGateway injects a custom gateway.
func WithGateway(gw core.Gateway) Option {
	return platform.WithGateway(gw)
}

// WithOrderedSaves makes saves complete in dispatch order.
func WithOrderedSaves(enabled bool) Option {
	return platform.WithOrderedSaves(enabled)
}

// WithEventBuffer sets the per-watcher event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithOnSave registers a callback invoked after every save.
func WithOnSave(fn func(*core.SaveTask)) Option {
	return platform.WithOnSave(fn)
}

// WithS3 configures the s3 backend.
func WithS3(cfg S3Config) Option {
	return platform.WithS3(cfg)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithForceTemp forces filesystem paths into the temporary sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithConfigFile loads settings from a YAML file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// --- Factory ---

// New creates a store without loading it.
func New(opts ...Option) (*Store, error) {
	return platform.New(opts...)
}

// Open creates a store and hydrates it from its backend.
func Open(ctx context.Context, opts ...Option) (*Store, error) {
	return platform.Open(ctx, opts...)
}

// NewSession creates an idle edit session over store.
func NewSession(store *Store, logger *slog.Logger) *Session {
	return session.New(store, logger)
}

// Filter returns the notes matching query.
func Filter(c Collection, query string) Collection {
	return core.Filter(c, query)
}

// --- Safety & Utils ---

// ResolvePath applies the dev sandbox to a data path.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards for a directory holding .notepad or notepad.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// FindConfig returns the notepad.yaml of the project containing dir, if any.
func FindConfig(dir string) (string, bool) {
	return platform.FindConfig(dir)
}

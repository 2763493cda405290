package platform

import (
	"log/slog"

	"github.com/aretw0/notepad/pkg/adapters/s3"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// DefaultPath is where the fs and sqlite backends keep their data when no
// path is configured. It doubles as the root marker found by FindRoot.
const DefaultPath = ".notepad"

// options holds the internal configuration for a notepad store.
// Zero values (and nil pointers) mean "not set" so a config file can fill them.
type options struct {
	backend      string
	path         string
	key          string
	logger       *slog.Logger
	kv           gateway.KeyValue
	gateway      core.Gateway
	orderedSaves *bool
	eventBuffer  int
	onSave       func(*core.SaveTask)
	s3           *s3.Config
	devSafety    *bool
	forceTemp    bool
	configFile   string
}

// Option defines a functional option for configuring a notepad store.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBackend selects the persistence backend by name: "memory", "fs",
// "sqlite" or "s3". Defaults to "fs".
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithPath sets the data location of the fs (directory) and sqlite (file or
// directory) backends. Defaults to ".notepad".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithKey sets the key the collection is stored under. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger for the store and every component below it.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeyValue injects a key-value backend, skipping backend selection.
func WithKeyValue(kv gateway.KeyValue) Option {
	return func(o *options) {
		o.kv = kv
	}
}

// WithGateway injects a gateway, skipping the key-value layer entirely.
func WithGateway(gw core.Gateway) Option {
	return func(o *options) {
		o.gateway = gw
	}
}

// WithOrderedSaves makes saves complete in dispatch order.
func WithOrderedSaves(enabled bool) Option {
	return func(o *options) {
		o.orderedSaves = &enabled
	}
}

// WithEventBuffer sets the per-watcher event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithOnSave registers a callback invoked after every save completes.
func WithOnSave(fn func(*core.SaveTask)) Option {
	return func(o *options) {
		o.onSave = fn
	}
}

// WithS3 configures the s3 backend. It does not select it; use WithBackend("s3").
func WithS3(cfg s3.Config) Option {
	return func(o *options) {
		o.s3 = &cfg
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) filesystem paths are re-rooted into a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = &enabled
	}
}

// WithForceTemp forces filesystem paths into the temporary sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithConfigFile loads settings from a YAML file. Options passed explicitly
// take precedence over the file.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

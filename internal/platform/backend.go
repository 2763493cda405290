package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/adapters/s3"
	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/gateway"
)

// openBackend builds the key-value backend selected by o.backend.
func openBackend(ctx context.Context, o *options, logger *slog.Logger) (gateway.KeyValue, error) {
	if o.kv != nil {
		return o.kv, nil
	}

	switch o.backend {
	case BackendMemory:
		return memory.New(), nil
	case "", BackendFS:
		return fs.New(fs.Config{Path: resolveDataPath(o, logger), Logger: logger}), nil
	case BackendSQLite:
		return sqlite.Open(sqlite.Config{Path: resolveDataPath(o, logger), Logger: logger})
	case BackendS3:
		if o.s3 == nil {
			return nil, fmt.Errorf("backend %q requires s3 configuration", BackendS3)
		}
		cfg := *o.s3
		cfg.Logger = logger
		return s3.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", o.backend)
	}
}

// resolveDataPath applies defaults and the dev sandbox to the data path.
func resolveDataPath(o *options, logger *slog.Logger) string {
	path := o.path
	if path == "" {
		path = DefaultPath
	}

	devSafety := true
	if o.devSafety != nil {
		devSafety = *o.devSafety
	}
	useTemp := o.forceTemp || (IsDevRun() && devSafety)
	resolved := ResolvePath(path, useTemp)

	if IsDevRun() {
		if devSafety {
			logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		} else {
			logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	if useTemp && resolved != path {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

package platform

import (
	"context"
	"log/slog"
	"os"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

// New wires a store from options without loading it.
//
//	store, err := notepad.New(notepad.WithBackend("sqlite"), notepad.WithPath("notes.db"))
func New(opts ...Option) (*core.Store, error) {
	return build(context.Background(), opts)
}

// Open wires a store and hydrates it from its backend.
// A load failure is returned together with the (empty, usable) store.
func Open(ctx context.Context, opts ...Option) (*core.Store, error) {
	store, err := build(ctx, opts)
	if err != nil {
		return nil, err
	}
	return store, store.Initialize(ctx)
}

func build(ctx context.Context, opts []Option) (*core.Store, error) {
	o := buildOptions(opts)

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.configFile != "" {
		cfg, err := LoadConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		o.merge(cfg)
		logger.Debug("config loaded", "file", o.configFile)
	}

	gw := o.gateway
	if gw == nil {
		kv, err := openBackend(ctx, o, logger)
		if err != nil {
			return nil, err
		}
		gw = gateway.New(kv, gateway.Config{Key: o.key, Logger: logger})
	}

	config := core.StoreConfig{
		Logger:      logger,
		EventBuffer: o.eventBuffer,
		OnSave:      o.onSave,
	}
	if o.orderedSaves != nil {
		config.OrderedSaves = *o.orderedSaves
	}
	return core.NewStore(gw, config), nil
}

// ConfigFromEnv returns the config file named by NOTEPAD_CONFIG, if set.
func ConfigFromEnv() (string, bool) {
	path := os.Getenv("NOTEPAD_CONFIG")
	return path, path != ""
}

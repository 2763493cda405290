package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
)

var (
	verbose     bool
	configFile  string
	backendName string
	dataPath    string
)

// flushTimeout bounds how long a command waits for its saves before exiting.
const flushTimeout = 30 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notepad",
	Short: "A small note store with pluggable persistence",
	Long: `notepad keeps a list of notes (title + description) and stores them as one
JSON document in a file, an SQLite database or an S3 bucket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// errNotPersisted marks a command whose changes live only in memory.
var errNotPersisted = errors.New("saved in memory but not persisted")

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errNotPersisted) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: notepad.yaml of the enclosing project, or $NOTEPAD_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Persistence backend: memory, fs, sqlite or s3")
	rootCmd.PersistentFlags().StringVar(&dataPath, "path", "", "Data path for the fs and sqlite backends")
}

// storeOptions turns the global flags into store options.
func storeOptions() []notepad.Option {
	opts := []notepad.Option{notepad.WithLogger(slog.Default())}

	cfg := configFile
	if cfg == "" {
		if path, ok := platform.ConfigFromEnv(); ok {
			cfg = path
		} else if wd, err := os.Getwd(); err == nil {
			cfg, _ = notepad.FindConfig(wd)
		}
	}
	if cfg != "" {
		opts = append(opts, notepad.WithConfigFile(cfg))
	}
	if backendName != "" {
		opts = append(opts, notepad.WithBackend(backendName))
	}
	if dataPath != "" {
		opts = append(opts, notepad.WithPath(dataPath))
	}
	return opts
}

// openStore opens and hydrates the store. A failed load is fatal for the CLI:
// writing on top of an unreadable backend would overwrite it.
func openStore(ctx context.Context) (*core.Store, error) {
	store, err := notepad.Open(ctx, storeOptions()...)
	if err != nil {
		if store != nil {
			_ = store.Close(ctx)
		}
		return nil, fmt.Errorf("open notes: %w", err)
	}
	return store, nil
}

// closeStore waits for pending saves and reports a failed save distinctly
// from other errors: the command's effect happened, but only in memory.
func closeStore(ctx context.Context, store *core.Store) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	err := store.Close(ctx)
	switch {
	case err == nil:
		return nil
	case core.IsPersistence(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", errNotPersisted, err)
	default:
		return err
	}
}

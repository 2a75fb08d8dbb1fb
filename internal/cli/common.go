package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/clock"
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/engine"
	"github.com/danieljhkim/scenable/internal/fsops"
	"github.com/danieljhkim/scenable/internal/hash"
	"github.com/danieljhkim/scenable/internal/logging"
	"github.com/danieljhkim/scenable/internal/state"
)

// runtime bundles everything a command needs. Close must be called when the
// command is done.
type runtime struct {
	paths    *config.Paths
	fs       fsops.FS
	settings *config.Settings
	logger   *slog.Logger
	engine   *engine.Engine
	backups  *backup.Manager

	closer io.Closer
}

// runtimeOptions controls newRuntime.
type runtimeOptions struct {
	// quiet disables console logging even when --log-level is set. The
	// editor owns the terminal.
	quiet bool
}

// newRuntime creates a runtime with real implementations of all
// dependencies. The manifest is not read.
func newRuntime(cmd *cobra.Command, opts runtimeOptions) (*runtime, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	settings, _, err := config.LoadSettings(fs, paths.Settings)
	if err != nil {
		return nil, err
	}
	if xplaneDir != "" {
		settings.XPlaneDir = xplaneDir
	}

	logger, closer, err := newLogger(cmd, paths, settings, opts)
	if err != nil {
		return nil, err
	}

	// Create real implementations
	store := state.NewStore(state.NewAppState(settings), state.WithLogger(logger))
	backups := backup.NewManager(fs, &clock.RealClock{}, paths.Backups)
	eng := engine.New(store, fs, hash.NewSHA256Hasher(), backups, logger)

	return &runtime{
		paths:    paths,
		fs:       fs,
		settings: settings,
		logger:   logger,
		engine:   eng,
		backups:  backups,
		closer:   closer,
	}, nil
}

// newLogger builds the process logger. The JSON log file follows the
// settings; stderr only gets records when --log-level is given.
func newLogger(cmd *cobra.Command, paths *config.Paths, settings *config.Settings, opts runtimeOptions) (*slog.Logger, io.Closer, error) {
	levelName := settings.Log.Level
	var console io.Writer
	if logLevel != "" {
		levelName = logLevel
		if !opts.quiet {
			console = cmd.ErrOrStderr()
		}
	}

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	logOpts := logging.Options{Level: level, Console: console}
	if settings.Log.File {
		logOpts.File = paths.LogFile()
	}
	return logging.New(logOpts)
}

// Close releases the log file.
func (r *runtime) Close() {
	logging.CloseQuietly(r.closer)
}

// newEngine creates a runtime and reads scenery_packs.ini. It fails with
// config.ErrNotConfigured when no X-Plane directory is known.
func newEngine(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	return newEngineWith(ctx, cmd, runtimeOptions{})
}

func newEngineWith(ctx context.Context, cmd *cobra.Command, opts runtimeOptions) (*runtime, error) {
	rt, err := newRuntime(cmd, opts)
	if err != nil {
		return nil, err
	}
	if !rt.settings.Configured() {
		rt.Close()
		return nil, config.ErrNotConfigured
	}

	if _, err := rt.engine.Load(ctx, &engine.LoadRequest{ResetHistory: true}); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool {
	return isTerminal(os.Stdin.Fd())
}

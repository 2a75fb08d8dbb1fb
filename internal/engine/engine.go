// Package engine provides the core operations behind every scenable command.
//
// The engine package is the orchestration layer between the CLI/TUI and the
// lower-level packages. It reads and writes scenery_packs.ini through fsops,
// decodes and encodes it with manifest, and routes every in-memory change
// through the state store so that undo/redo history and the synchronized
// flag stay consistent.
//
// Key components:
//   - Engine: Main orchestrator that owns the store and the manifest file
//   - Load/Save: Disk synchronization, with a backup before the first save
//   - SetEnabled/SetAll: Labeled edits that land in the undo history
//   - Status/Diff: Read-only reports comparing memory with disk
package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/fsops"
	"github.com/danieljhkim/scenable/internal/hash"
	"github.com/danieljhkim/scenable/internal/manifest"
	"github.com/danieljhkim/scenable/internal/state"
)

// Engine orchestrates all scenable operations.
// It is the main API surface called by the CLI and the TUI. An Engine is
// not safe for concurrent use; the caller that dispatches owns it.
type Engine struct {
	store   *state.Store
	fs      fsops.FS
	hasher  hash.Hasher
	backups *backup.Manager
	logger  *slog.Logger

	// version is the version number of the last decoded document.
	version uint64
	loaded  bool

	// syncedHash is the fingerprint of the bytes last read or written.
	syncedHash string

	backedUp bool
}

// New creates a new Engine with the given dependencies.
func New(
	store *state.Store,
	fs fsops.FS,
	hasher hash.Hasher,
	backups *backup.Manager,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		fs:      fs,
		hasher:  hasher,
		backups: backups,
		logger:  logger,
	}
}

// Store returns the state store driven by the engine.
func (e *Engine) Store() *state.Store {
	return e.store
}

// State returns the current application state.
func (e *Engine) State() *state.AppState {
	return e.store.State()
}

// Loaded reports whether a manifest has been read since the settings last
// changed.
func (e *Engine) Loaded() bool {
	return e.loaded
}

// Settings returns the current settings.
func (e *Engine) Settings() *config.Settings {
	if s := e.store.State().Settings; s != nil {
		return s
	}
	return config.DefaultSettings()
}

// ManifestPath returns the path of scenery_packs.ini for the configured
// X-Plane directory.
func (e *Engine) ManifestPath() (string, error) {
	return e.Settings().ManifestPath()
}

// Version returns the version number that Save will write.
func (e *Engine) Version() uint64 {
	if !e.loaded {
		return manifest.DefaultVersion
	}
	return e.version
}

// SetSettings replaces the settings. When the manifest location changes,
// everything remembered about the previous file is forgotten.
func (e *Engine) SetSettings(settings *config.Settings) error {
	before, _ := e.ManifestPath()
	if err := e.store.Dispatch(state.SetSettings{Settings: settings}); err != nil {
		return err
	}
	after, _ := e.ManifestPath()
	if before != after {
		e.loaded = false
		e.version = 0
		e.syncedHash = ""
		e.backedUp = false
	}
	return nil
}

// markSynced records data as the on-disk content of the current snapshot.
func (e *Engine) markSynced(data []byte) error {
	if err := e.store.Dispatch(state.MarkSynced{}); err != nil {
		return err
	}
	e.syncedHash = e.hasher.HashBytes(data)
	return nil
}

// fileMode returns the permission bits of an existing file, or 0644.
func (e *Engine) fileMode(path string) os.FileMode {
	if info, err := e.fs.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// readManifest reads and decodes the manifest at path.
func (e *Engine) readManifest(path string) (*manifest.Document, []byte, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, nil, &IoError{Op: "read", Path: path, Err: err}
	}

	doc, err := manifest.DecodeBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, data, nil
}

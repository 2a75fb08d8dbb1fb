package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/scenable/internal/manifest"
)

// Save writes the current entries to scenery_packs.ini.
//
// Before the first write of an engine's lifetime the on-disk file is backed
// up when backups are enabled. A failed save never marks the state as
// synchronized.
func (e *Engine) Save(ctx context.Context, req *SaveRequest) (*SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.loaded {
		return nil, ErrNotLoaded
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	data, err := manifest.Marshal(e.store.State().Entries.Document(e.Version()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenery packs: %w", err)
	}

	result := &SaveResult{Path: path, Data: data, DryRun: req.DryRun}
	if req.DryRun {
		return result, nil
	}

	if !e.backedUp {
		if err := e.backupBeforeWrite(path, result); err != nil {
			return nil, err
		}
	}

	if err := e.fs.AtomicWrite(path, data, e.fileMode(path)); err != nil {
		return nil, &IoError{Op: "write", Path: path, Err: err}
	}

	if err := e.markSynced(data); err != nil {
		return nil, err
	}

	e.logger.Info("saved scenery packs", "path", path, "bytes", len(data))
	return result, nil
}

// backupBeforeWrite backs up the manifest at path, once per engine, and
// prunes old backups.
func (e *Engine) backupBeforeWrite(path string, result *SaveResult) error {
	settings := e.Settings()
	if !settings.Backup.Enabled || e.backups == nil {
		return nil
	}

	exists, err := e.fs.Exists(path)
	if err != nil {
		return &IoError{Op: "stat", Path: path, Err: err}
	}
	if !exists {
		return nil
	}

	info, err := e.backups.Create(path)
	if err != nil {
		return &IoError{Op: "back up", Path: path, Err: err}
	}
	e.backedUp = true
	result.Backup = info
	e.logger.Info("created backup", "backup", info.Name)

	pruned, err := e.backups.Prune(settings.Backup.Keep)
	if err != nil {
		// Stale backups are not a reason to refuse a save.
		e.logger.Warn("failed to prune backups", "error", err)
	}
	result.Pruned = pruned
	return nil
}

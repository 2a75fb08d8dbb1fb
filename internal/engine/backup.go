package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/manifest"
	"github.com/danieljhkim/scenable/internal/state"
)

// ListBackups returns every backup, newest first.
func (e *Engine) ListBackups(ctx context.Context) ([]backup.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.backups == nil {
		return []backup.Info{}, nil
	}
	return e.backups.List()
}

// CreateBackup backs up the manifest on disk now, regardless of settings.
func (e *Engine) CreateBackup(ctx context.Context) (*backup.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.backups == nil {
		return nil, fmt.Errorf("backups are not available")
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	info, err := e.backups.Create(path)
	if err != nil {
		return nil, &IoError{Op: "back up", Path: path, Err: err}
	}
	e.logger.Info("created backup", "backup", info.Name)
	return info, nil
}

// RestoreBackup writes the named backup over the manifest and reloads it.
// The restore is recorded as an undoable step. The backup must decode
// before anything on disk is touched.
func (e *Engine) RestoreBackup(ctx context.Context, name string) (*RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.backups == nil {
		return nil, fmt.Errorf("backups are not available")
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	data, err := e.backups.Read(name)
	if err != nil {
		return nil, err
	}
	doc, err := manifest.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("backup %s is not a valid manifest: %w", name, err)
	}

	result := &RestoreResult{Backup: name}
	if e.Settings().Backup.Enabled {
		exists, err := e.fs.Exists(path)
		if err != nil {
			return nil, &IoError{Op: "stat", Path: path, Err: err}
		}
		if exists {
			info, err := e.backups.Create(path)
			if err != nil {
				return nil, &IoError{Op: "back up", Path: path, Err: err}
			}
			result.SafetyBackup = info
		}
	}

	if err := e.fs.AtomicWrite(path, data, e.fileMode(path)); err != nil {
		return nil, &IoError{Op: "write", Path: path, Err: err}
	}

	load, err := e.replace(path, doc, data, state.Restored(name), false)
	if err != nil {
		return nil, err
	}
	result.Load = load

	e.logger.Info("restored backup", "backup", name, "path", path)
	return result, nil
}

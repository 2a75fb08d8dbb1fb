package engine

import (
	"context"
	"errors"
	"os"
)

// Status reports the in-memory state and whether the manifest on disk was
// modified since it was last read or written.
func (e *Engine) Status(ctx context.Context) (*StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	s := e.store.State()
	enabled, disabled := s.Entries.Counts()
	result := &StatusResult{
		Path:         path,
		Version:      e.Version(),
		Total:        s.Entries.Len(),
		Enabled:      enabled,
		Disabled:     disabled,
		Position:     s.History.Position(),
		Length:       s.History.Len(),
		Synchronized: s.Synchronized(),
	}
	if label, ok := s.UndoLabel(); ok {
		result.UndoLabel = label.String()
	}
	if label, ok := s.RedoLabel(); ok {
		result.RedoLabel = label.String()
	}

	changed, err := e.DiskChanged(ctx)
	if err != nil {
		e.logger.Warn("failed to check manifest on disk", "path", path, "error", err)
	}
	result.DiskChanged = changed

	return result, nil
}

// DiskChanged reports whether the manifest content differs from what the
// engine last read or wrote. A missing file counts as changed.
func (e *Engine) DiskChanged(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path, err := e.ManifestPath()
	if err != nil {
		return false, err
	}

	data, err := e.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, &IoError{Op: "read", Path: path, Err: err}
	}

	return !e.loaded || e.hasher.HashBytes(data) != e.syncedHash, nil
}

package engine

import (
	"context"

	"github.com/danieljhkim/scenable/internal/manifest"
	"github.com/danieljhkim/scenable/internal/state"
)

// Load reads scenery_packs.ini and replaces the in-memory entries with its
// contents. A failed load leaves the state untouched.
func (e *Engine) Load(ctx context.Context, req *LoadRequest) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	doc, data, err := e.readManifest(path)
	if err != nil {
		return nil, err
	}

	label := state.Reloaded()
	if req.ResetHistory {
		label = state.Loaded()
	}

	result, err := e.replace(path, doc, data, label, req.ResetHistory)
	if err != nil {
		return nil, err
	}

	e.logger.Info("loaded scenery packs",
		"path", path,
		"version", result.Version,
		"total", result.Total,
		"enabled", result.Enabled)
	return result, nil
}

// replace dispatches doc as the new entries under label and records data as
// the synchronized content.
func (e *Engine) replace(path string, doc *manifest.Document, data []byte, label *state.Label, reset bool) (*LoadResult, error) {
	entries := state.EntriesOf(doc.Entries)

	if err := e.store.Dispatch(state.ReplaceEntries{
		Entries:      entries,
		Label:        label,
		ResetHistory: reset,
	}); err != nil {
		return nil, err
	}
	if err := e.markSynced(data); err != nil {
		return nil, err
	}

	e.version = doc.Version
	e.loaded = true

	enabled, disabled := entries.Counts()
	return &LoadResult{
		Path:     path,
		Version:  doc.Version,
		Total:    entries.Len(),
		Enabled:  enabled,
		Disabled: disabled,
	}, nil
}

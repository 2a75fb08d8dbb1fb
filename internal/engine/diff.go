package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/manifest"
	"github.com/danieljhkim/scenable/internal/state"
)

// Diff compares the in-memory entries with the manifest on disk, keyed by
// path. Changes are listed in memory order, followed by packs only present
// on disk in file order.
func (e *Engine) Diff(ctx context.Context) (*DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := e.ManifestPath()
	if err != nil {
		return nil, err
	}

	doc, _, err := e.readManifest(path)
	if err != nil {
		return nil, err
	}

	return &DiffResult{
		Path:    path,
		Changes: diffEntries(e.store.State().Entries, doc.Entries),
	}, nil
}

// DiffBackup compares the in-memory entries with a backup. An empty name
// selects the newest backup.
func (e *Engine) DiffBackup(ctx context.Context, name string) (*DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if e.backups == nil {
		return nil, fmt.Errorf("backups are not available")
	}

	if name == "" {
		infos, err := e.backups.List()
		if err != nil {
			return nil, err
		}
		if len(infos) == 0 {
			return nil, fmt.Errorf("no backups in %s: %w", e.backups.Dir(), backup.ErrNotFound)
		}
		name = infos[0].Name
	}

	data, err := e.backups.Read(name)
	if err != nil {
		return nil, err
	}
	doc, err := manifest.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("backup %s is not a valid manifest: %w", name, err)
	}

	return &DiffResult{
		Path:    name,
		Changes: diffEntries(e.store.State().Entries, doc.Entries),
	}, nil
}

// diffEntries reports how current differs from base.
func diffEntries(current state.Entries, base []manifest.Entry) []DiffEntry {
	changes := []DiffEntry{}

	onDisk := make(map[string]bool, len(base))
	for _, entry := range base {
		if _, dup := onDisk[entry.Path]; !dup {
			onDisk[entry.Path] = entry.Enabled
		}
	}

	inMemory := make(map[string]bool)
	for _, entry := range current.All() {
		if inMemory[entry.Path] {
			continue
		}
		inMemory[entry.Path] = true

		diskEnabled, ok := onDisk[entry.Path]
		switch {
		case !ok:
			changes = append(changes, DiffEntry{Path: entry.Path, Kind: ChangeAdded})
		case diskEnabled != entry.Enabled && entry.Enabled:
			changes = append(changes, DiffEntry{Path: entry.Path, Kind: ChangeEnabled})
		case diskEnabled != entry.Enabled:
			changes = append(changes, DiffEntry{Path: entry.Path, Kind: ChangeDisabled})
		}
	}

	reported := make(map[string]bool)
	for _, entry := range base {
		if !inMemory[entry.Path] && !reported[entry.Path] {
			reported[entry.Path] = true
			changes = append(changes, DiffEntry{Path: entry.Path, Kind: ChangeRemoved})
		}
	}

	return changes
}

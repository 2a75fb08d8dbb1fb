package engine

import (
	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/manifest"
)

// LoadResult represents the result of reading scenery_packs.ini.
type LoadResult struct {
	Path     string `json:"path"`
	Version  uint64 `json:"version"`
	Total    int    `json:"total"`
	Enabled  int    `json:"enabled"`
	Disabled int    `json:"disabled"`
}

// SaveResult represents the result of writing scenery_packs.ini.
type SaveResult struct {
	Path string `json:"path"`

	// Data is the encoded manifest (written unless DryRun)
	Data []byte `json:"-"`

	DryRun bool `json:"dry_run"`

	// Backup is the backup taken before writing, if any
	Backup *backup.Info `json:"backup,omitempty"`

	// Pruned lists backups removed to honor the retention setting
	Pruned []string `json:"pruned,omitempty"`
}

// PackChange describes one pack touched by SetEnabled.
type PackChange struct {
	// Index is the 1-based position in the manifest
	Index   int            `json:"index"`
	Entry   manifest.Entry `json:"entry"`
	Changed bool           `json:"changed"`
}

// SetEnabledResult represents the result of SetEnabled.
type SetEnabledResult struct {
	Packs []PackChange `json:"packs"`

	// Changed is the number of packs whose state actually changed
	Changed int `json:"changed"`
}

// SetAllResult represents the result of SetAll.
type SetAllResult struct {
	Enabled bool `json:"enabled"`
	Changed int  `json:"changed"`
}

// HistoryResult represents the result of Undo or Redo.
type HistoryResult struct {
	// Label describes the edit that was undone or redone
	Label        string `json:"label"`
	Position     int    `json:"position"`
	Length       int    `json:"length"`
	Synchronized bool   `json:"synchronized"`
}

// StatusResult represents the current scenery pack status.
type StatusResult struct {
	Path     string `json:"path"`
	Version  uint64 `json:"version"`
	Total    int    `json:"total"`
	Enabled  int    `json:"enabled"`
	Disabled int    `json:"disabled"`

	// Position and Length describe the undo history
	Position int `json:"history_position"`
	Length   int `json:"history_length"`

	Synchronized bool   `json:"synchronized"`
	UndoLabel    string `json:"undo,omitempty"`
	RedoLabel    string `json:"redo,omitempty"`

	// DiskChanged reports that the file was modified outside scenable since
	// it was last read or written
	DiskChanged bool `json:"disk_changed"`
}

// ChangeKind classifies a difference between memory and disk.
type ChangeKind string

const (
	// ChangeEnabled is a pack enabled in memory but disabled on disk.
	ChangeEnabled ChangeKind = "enabled"

	// ChangeDisabled is a pack disabled in memory but enabled on disk.
	ChangeDisabled ChangeKind = "disabled"

	// ChangeAdded is a pack only present in memory.
	ChangeAdded ChangeKind = "added"

	// ChangeRemoved is a pack only present on disk.
	ChangeRemoved ChangeKind = "removed"
)

// DiffEntry is one difference between memory and disk.
type DiffEntry struct {
	Path string     `json:"path"`
	Kind ChangeKind `json:"kind"`
}

// DiffResult represents the differences between the in-memory entries and
// the manifest on disk.
type DiffResult struct {
	Path    string      `json:"path"`
	Changes []DiffEntry `json:"changes"`
}

// RestoreResult represents the result of restoring a backup.
type RestoreResult struct {
	Backup string `json:"backup"`

	// SafetyBackup is the backup of the replaced manifest, if one was taken
	SafetyBackup *backup.Info `json:"safety_backup,omitempty"`

	Load *LoadResult `json:"load"`
}

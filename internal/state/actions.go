package state

import (
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/manifest"
)

// Action is a request to change the state. The set of actions is closed.
type Action interface {
	actionName() string
}

// SetSettings replaces the settings. History is not touched.
type SetSettings struct {
	Settings *config.Settings
}

// ReplaceEntries replaces the whole entry list, typically after a read.
// With a Label, a new snapshot is recorded: it replaces the history when
// ResetHistory is set and is pushed onto it otherwise.
type ReplaceEntries struct {
	Entries      Entries
	Label        *Label
	ResetHistory bool
}

// UpdateEntry replaces the entry at Index. With a Label, a snapshot of the
// full updated list is pushed onto the history.
type UpdateEntry struct {
	Index int
	Entry manifest.Entry
	Label *Label
}

// Undo moves the history cursor back one item.
type Undo struct{}

// Redo moves the history cursor forward one item.
type Redo struct{}

// MarkSynced records the current snapshot as the one on disk.
type MarkSynced struct{}

func (SetSettings) actionName() string    { return "set_settings" }
func (ReplaceEntries) actionName() string { return "replace_entries" }
func (UpdateEntry) actionName() string    { return "update_entry" }
func (Undo) actionName() string           { return "undo" }
func (Redo) actionName() string           { return "redo" }
func (MarkSynced) actionName() string     { return "mark_synced" }

// ActionName returns a stable, human-readable name for an action.
func ActionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.actionName()
}

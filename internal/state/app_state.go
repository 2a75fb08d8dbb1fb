package state

import (
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/history"
)

// Snapshot is an immutable copy of the entries at one point in history.
// Two snapshots represent the same saved state iff their IDs match.
type Snapshot struct {
	ID      uint64
	Entries Entries
}

// HistoryItem pairs a snapshot with the label of the edit that produced it.
type HistoryItem struct {
	Label    Label
	Snapshot Snapshot
}

// AppState is the complete application state. A new AppState is produced on
// every dispatch; values reachable from a published AppState are never
// mutated.
type AppState struct {
	Settings *config.Settings

	// Entries is the live list. It can run ahead of the current snapshot
	// when an unlabeled edit was applied.
	Entries Entries

	History history.Stack[HistoryItem]

	// SavedSnapshotID is the id of the snapshot last read from or written
	// to disk.
	SavedSnapshotID uint64
}

// NewAppState returns the initial state: no entries and a single, unlabeled
// history item. It reports as synchronized.
func NewAppState(settings *config.Settings) *AppState {
	return &AppState{
		Settings: settings,
		History:  history.New(HistoryItem{}),
	}
}

// Current returns the history item at the cursor.
func (s *AppState) Current() HistoryItem {
	item, _ := s.History.PeekCurrent()
	return item
}

// Synchronized reports whether the snapshot at the history cursor is the one
// last synchronized with disk.
func (s *AppState) Synchronized() bool {
	return s.SavedSnapshotID == s.Current().Snapshot.ID
}

// UndoLabel returns the label of the edit an Undo would revert. It reports
// false when there is nothing to undo.
func (s *AppState) UndoLabel() (Label, bool) {
	if _, _, ok := s.History.PeekPrev(); !ok {
		return Label{}, false
	}
	return s.Current().Label, true
}

// RedoLabel returns the label of the edit a Redo would re-apply. It reports
// false when there is nothing to redo.
func (s *AppState) RedoLabel() (Label, bool) {
	next, _, ok := s.History.PeekNext()
	if !ok {
		return Label{}, false
	}
	return next.Label, true
}

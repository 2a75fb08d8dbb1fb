package state

import (
	"fmt"
	"math/rand/v2"
)

// Reducer computes the next state from the previous one and an action.
type Reducer struct {
	// NewID returns the id of a new snapshot. Defaults to a random uint64.
	NewID func() uint64
}

// newID never returns 0, which is the id of the initial unlabeled item.
func (r Reducer) newID() uint64 {
	gen := r.NewID
	if gen == nil {
		gen = rand.Uint64
	}
	for {
		if id := gen(); id != 0 {
			return id
		}
	}
}

func (r Reducer) snapshot(entries Entries) Snapshot {
	return Snapshot{ID: r.newID(), Entries: entries}
}

// Reduce returns the state that follows prev after action. It always
// returns a complete replacement state, also when it reports a non-fatal
// error; in that case the returned state equals prev.
//
// prev and everything reachable from it are left untouched.
func (r Reducer) Reduce(prev *AppState, action Action) (*AppState, error) {
	next := *prev

	switch a := action.(type) {
	case SetSettings:
		next.Settings = a.Settings

	case ReplaceEntries:
		if a.Label != nil {
			item := HistoryItem{Label: *a.Label, Snapshot: r.snapshot(a.Entries)}
			if a.ResetHistory {
				next.History.Reset(item)
			} else {
				next.History.Push(item)
			}
		}
		next.Entries = a.Entries

	case UpdateEntry:
		entries, ok := prev.Entries.Set(a.Index, a.Entry)
		if !ok {
			return &next, &InvariantViolation{
				Action: a.actionName(),
				Index:  a.Index,
				Len:    prev.Entries.Len(),
			}
		}
		if a.Label != nil {
			next.History.Push(HistoryItem{Label: *a.Label, Snapshot: r.snapshot(entries)})
		}
		next.Entries = entries

	case Undo:
		item, _, ok := next.History.Undo()
		if !ok {
			return &next, ErrNothingToUndo
		}
		next.Entries = item.Snapshot.Entries

	case Redo:
		item, _, ok := next.History.Redo()
		if !ok {
			return &next, ErrNothingToRedo
		}
		next.Entries = item.Snapshot.Entries

	case MarkSynced:
		next.SavedSnapshotID = next.Current().Snapshot.ID

	default:
		return &next, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	return &next, nil
}

package engine

import (
	"context"

	"github.com/danieljhkim/scenable/internal/state"
)

// SetEnabled enables, disables or toggles the packs named by the selectors.
// Every selector is resolved before anything changes; each pack whose state
// changes becomes its own undo step.
func (e *Engine) SetEnabled(ctx context.Context, req *SetEnabledRequest) (*SetEnabledResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := e.store.State().Entries
	var indices []int
	seen := make(map[int]bool)
	for _, sel := range req.Selectors {
		i, err := Resolve(entries, sel)
		if err != nil {
			return nil, err
		}
		if !seen[i] {
			seen[i] = true
			indices = append(indices, i)
		}
	}

	result := &SetEnabledResult{Packs: []PackChange{}}
	for _, i := range indices {
		entry, _ := e.store.State().Entries.At(i)

		want := entry.Enabled
		switch req.Mode {
		case ModeEnable:
			want = true
		case ModeDisable:
			want = false
		case ModeToggle:
			want = !entry.Enabled
		}

		change := PackChange{Index: i + 1, Entry: entry}
		if want != entry.Enabled {
			entry.Enabled = want
			if err := e.store.Dispatch(state.UpdateEntry{
				Index: i,
				Entry: entry,
				Label: state.Toggled(entry.Path, want),
			}); err != nil {
				return result, err
			}
			change.Entry = entry
			change.Changed = true
			result.Changed++
		}
		result.Packs = append(result.Packs, change)
	}

	e.logger.Debug("set enabled", "mode", req.Mode.String(), "selected", len(indices), "changed", result.Changed)
	return result, nil
}

// SetAll enables or disables every pack as a single undo step. Nothing is
// recorded when no pack changes.
func (e *Engine) SetAll(ctx context.Context, enabled bool) (*SetAllResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := e.store.State().Entries
	updated := current.Slice()
	changed := 0
	for i := range updated {
		if updated[i].Enabled != enabled {
			updated[i].Enabled = enabled
			changed++
		}
	}

	result := &SetAllResult{Enabled: enabled, Changed: changed}
	if changed == 0 {
		return result, nil
	}

	if err := e.store.Dispatch(state.ReplaceEntries{
		Entries: state.EntriesOf(updated),
		Label:   state.Bulk(enabled, changed),
	}); err != nil {
		return nil, err
	}
	return result, nil
}

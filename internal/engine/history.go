package engine

import (
	"context"

	"github.com/danieljhkim/scenable/internal/state"
)

// Undo reverts the most recent edit.
func (e *Engine) Undo(ctx context.Context) (*HistoryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label, _ := e.store.State().UndoLabel()
	if err := e.store.Dispatch(state.Undo{}); err != nil {
		return nil, err
	}
	return e.historyResult(label), nil
}

// Redo re-applies the most recently undone edit.
func (e *Engine) Redo(ctx context.Context) (*HistoryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label, _ := e.store.State().RedoLabel()
	if err := e.store.Dispatch(state.Redo{}); err != nil {
		return nil, err
	}
	return e.historyResult(label), nil
}

func (e *Engine) historyResult(label state.Label) *HistoryResult {
	s := e.store.State()
	return &HistoryResult{
		Label:        label.String(),
		Position:     s.History.Position(),
		Length:       s.History.Len(),
		Synchronized: s.Synchronized(),
	}
}

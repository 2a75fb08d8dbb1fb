package state

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToUndo is returned by Undo at the bottom of the history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo at the top of the history.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrReentrantDispatch is returned when a subscriber dispatches while
	// the store is still notifying.
	ErrReentrantDispatch = errors.New("dispatch called from a subscriber")

	// ErrUnknownAction is returned for an action the reducer does not handle.
	ErrUnknownAction = errors.New("unknown action")
)

// InvariantViolation reports an action that referenced an entry that does
// not exist. The state is left unchanged.
type InvariantViolation struct {
	Action string
	Index  int
	Len    int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Action, e.Index, e.Len)
}

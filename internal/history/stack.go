// Package history provides a linear undo/redo stack.
//
// A Stack holds a non-empty sequence of items and a cursor that marks the
// current one. Pushing while the cursor is below the top discards the redo
// branch; there is never more than one future.
//
// Stack is a value type backed by a persistent list. Copying a Stack and
// mutating the copy leaves the original untouched, which lets callers keep
// old states around (or build new ones in a pure function) without cloning
// the whole history.
package history

import "github.com/benbjohnson/immutable"

// Stack is a linear, branch-discarding undo/redo stack.
// The zero value is a stack holding one zero-valued item.
type Stack[T any] struct {
	items  *immutable.List[T]
	cursor int
}

// New returns a stack holding initial at cursor 0.
func New[T any](initial T) Stack[T] {
	return Stack[T]{items: immutable.NewList(initial)}
}

// list returns the backing list, materializing the zero value's implicit item.
func (s *Stack[T]) list() *immutable.List[T] {
	if s.items == nil {
		var zero T
		s.items = immutable.NewList(zero)
		s.cursor = 0
	}
	return s.items
}

// Len returns the number of items on the stack.
func (s Stack[T]) Len() int {
	return s.list().Len()
}

// Position returns the cursor index.
func (s Stack[T]) Position() int {
	return s.cursor
}

// PeekCurrent returns the item at the cursor.
func (s Stack[T]) PeekCurrent() (T, int) {
	return s.list().Get(s.cursor), s.cursor
}

// PeekPrev returns the item an Undo would move to.
func (s Stack[T]) PeekPrev() (T, int, bool) {
	if s.cursor == 0 {
		var zero T
		return zero, 0, false
	}
	return s.list().Get(s.cursor - 1), s.cursor - 1, true
}

// PeekNext returns the item a Redo would move to.
func (s Stack[T]) PeekNext() (T, int, bool) {
	items := s.list()
	if s.cursor >= items.Len()-1 {
		var zero T
		return zero, 0, false
	}
	return items.Get(s.cursor + 1), s.cursor + 1, true
}

// Push discards every item after the cursor, appends item and moves the
// cursor onto it. It returns the new cursor.
func (s *Stack[T]) Push(item T) int {
	items := s.list()
	if s.cursor < items.Len()-1 {
		items = items.Slice(0, s.cursor+1)
	}
	s.items = items.Append(item)
	s.cursor++
	return s.cursor
}

// Undo moves the cursor back one item and returns it. It reports false and
// leaves the stack unchanged when the cursor is already at the bottom.
func (s *Stack[T]) Undo() (T, int, bool) {
	items := s.list()
	if s.cursor == 0 {
		var zero T
		return zero, 0, false
	}
	s.cursor--
	return items.Get(s.cursor), s.cursor, true
}

// Redo moves the cursor forward one item and returns it. It reports false
// and leaves the stack unchanged when the cursor is already at the top.
func (s *Stack[T]) Redo() (T, int, bool) {
	items := s.list()
	if s.cursor >= items.Len()-1 {
		var zero T
		return zero, 0, false
	}
	s.cursor++
	return items.Get(s.cursor), s.cursor, true
}

// Reset replaces the whole stack with a single item.
func (s *Stack[T]) Reset(item T) {
	s.items = immutable.NewList(item)
	s.cursor = 0
}

// Items returns a copy of every item, bottom first.
func (s Stack[T]) Items() []T {
	items := s.list()
	out := make([]T, 0, items.Len())
	itr := items.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		out = append(out, v)
	}
	return out
}

package history

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type peeked struct {
	item  int
	index int
	ok    bool
}

func peekPrev(s Stack[int]) peeked {
	v, i, ok := s.PeekPrev()
	return peeked{v, i, ok}
}

func peekNext(s Stack[int]) peeked {
	v, i, ok := s.PeekNext()
	return peeked{v, i, ok}
}

func TestStack_Walkthrough(t *testing.T) {
	s := New(0)

	cur, idx := s.PeekCurrent()
	assert.Equal(t, 0, cur)
	assert.Equal(t, 0, idx)
	assert.False(t, peekPrev(s).ok)
	assert.False(t, peekNext(s).ok)
	assert.Equal(t, 1, s.Len())

	_, _, ok := s.Undo()
	assert.False(t, ok)

	assert.Equal(t, 1, s.Push(5))
	cur, idx = s.PeekCurrent()
	assert.Equal(t, 5, cur)
	assert.Equal(t, 1, idx)
	assert.Equal(t, peeked{0, 0, true}, peekPrev(s))
	assert.False(t, peekNext(s).ok)
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, 2, s.Push(10))
	assert.Equal(t, peeked{5, 1, true}, peekPrev(s))
	assert.Equal(t, 3, s.Len())

	v, i, ok := s.Undo()
	assert.Equal(t, peeked{5, 1, true}, peeked{v, i, ok})
	assert.Equal(t, peeked{0, 0, true}, peekPrev(s))
	assert.Equal(t, peeked{10, 2, true}, peekNext(s))
	assert.Equal(t, 3, s.Len())

	// overwrites the previous third item
	assert.Equal(t, 2, s.Push(7))
	cur, idx = s.PeekCurrent()
	assert.Equal(t, 7, cur)
	assert.Equal(t, 2, idx)
	assert.False(t, peekNext(s).ok)
	assert.Equal(t, 3, s.Len())

	v, i, ok = s.Undo()
	assert.Equal(t, peeked{5, 1, true}, peeked{v, i, ok})
	assert.Equal(t, peeked{7, 2, true}, peekNext(s))

	v, i, ok = s.Redo()
	assert.Equal(t, peeked{7, 2, true}, peeked{v, i, ok})
	assert.Equal(t, peeked{5, 1, true}, peekPrev(s))
	assert.False(t, peekNext(s).ok)

	_, _, ok = s.Redo()
	assert.False(t, ok)
	assert.Equal(t, 2, s.Position())
}

func TestStack_PushAfterUndoPrunesRedoBranch(t *testing.T) {
	s := New("A")
	s.Push("B")
	s.Push("C")
	require.Equal(t, 2, s.Position())

	_, idx, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, 1, idx)

	assert.Equal(t, 2, s.Push("D"))
	assert.Equal(t, []string{"A", "B", "D"}, s.Items())

	_, _, ok = s.Redo()
	assert.False(t, ok, "C must be unreachable")
}

func TestStack_PushFromBottomDropsEverythingAbove(t *testing.T) {
	s := New("A")
	s.Push("B")
	s.Push("C")
	s.Undo()
	s.Undo()

	assert.Equal(t, 1, s.Push("X"))
	assert.Equal(t, []string{"A", "X"}, s.Items())
}

func TestStack_Reset(t *testing.T) {
	s := New(1)
	s.Push(2)
	s.Push(3)

	s.Reset(9)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Position())
	cur, _ := s.PeekCurrent()
	assert.Equal(t, 9, cur)
	assert.False(t, peekPrev(s).ok)
	assert.False(t, peekNext(s).ok)
}

func TestStack_ZeroValue(t *testing.T) {
	var s Stack[int]
	assert.Equal(t, 1, s.Len())
	cur, idx := s.PeekCurrent()
	assert.Equal(t, 0, cur)
	assert.Equal(t, 0, idx)

	assert.Equal(t, 1, s.Push(4))
	assert.Equal(t, []int{0, 4}, s.Items())
}

func TestStack_CopiesAreIndependent(t *testing.T) {
	base := New("A")
	base.Push("B")
	base.Push("C")
	base.Undo()

	branch := base
	branch.Push("D")

	assert.Equal(t, []string{"A", "B", "C"}, base.Items())
	assert.Equal(t, 1, base.Position())
	next, _, ok := base.PeekNext()
	assert.True(t, ok)
	assert.Equal(t, "C", next)

	assert.Equal(t, []string{"A", "B", "D"}, branch.Items())

	undone := branch
	undone.Undo()
	assert.Equal(t, 2, branch.Position())
	assert.Equal(t, 1, undone.Position())
}

func TestStack_UndoRedoInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for iter := 0; iter < 200; iter++ {
		s := New(0)
		for i := 0; i < 1+rng.IntN(20); i++ {
			switch rng.IntN(3) {
			case 0:
				s.Push(rng.Int())
			case 1:
				s.Undo()
			default:
				s.Redo()
			}
		}

		beforeItem, beforeIdx := s.PeekCurrent()
		if _, _, ok := s.Undo(); !ok {
			continue
		}
		_, _, ok := s.Redo()
		require.True(t, ok)

		afterItem, afterIdx := s.PeekCurrent()
		require.Equal(t, beforeIdx, afterIdx)
		require.Equal(t, beforeItem, afterItem)
	}
}

func TestStack_CursorInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	s := New(0)

	for i := 0; i < 1000; i++ {
		switch rng.IntN(4) {
		case 0:
			s.Push(i)
		case 1:
			s.Undo()
		case 2:
			s.Redo()
		default:
			if rng.IntN(20) == 0 {
				s.Reset(i)
			}
		}
		require.GreaterOrEqual(t, s.Position(), 0)
		require.Less(t, s.Position(), s.Len())
	}
}

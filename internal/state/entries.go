package state

import (
	"iter"

	"github.com/benbjohnson/immutable"

	"github.com/danieljhkim/scenable/internal/manifest"
)

// Entries is a persistent, ordered list of manifest entries. Set returns a
// new list that shares every untouched node with the receiver, so keeping
// one Entries per history snapshot costs O(edit) rather than O(len).
//
// The zero value is an empty list.
type Entries struct {
	list *immutable.List[manifest.Entry]
}

// EntriesOf builds Entries from a slice. The slice is not retained.
func EntriesOf(entries []manifest.Entry) Entries {
	b := immutable.NewListBuilder[manifest.Entry]()
	for _, e := range entries {
		b.Append(e)
	}
	return Entries{list: b.List()}
}

// Len returns the number of entries.
func (e Entries) Len() int {
	if e.list == nil {
		return 0
	}
	return e.list.Len()
}

// At returns the entry at index i.
func (e Entries) At(i int) (manifest.Entry, bool) {
	if i < 0 || i >= e.Len() {
		return manifest.Entry{}, false
	}
	return e.list.Get(i), true
}

// Set returns a copy with the entry at index i replaced. It reports false
// and returns the receiver unchanged when i is out of range.
func (e Entries) Set(i int, entry manifest.Entry) (Entries, bool) {
	if i < 0 || i >= e.Len() {
		return e, false
	}
	return Entries{list: e.list.Set(i, entry)}, true
}

// All iterates over index/entry pairs in order.
func (e Entries) All() iter.Seq2[int, manifest.Entry] {
	return func(yield func(int, manifest.Entry) bool) {
		if e.list == nil {
			return
		}
		itr := e.list.Iterator()
		for !itr.Done() {
			i, v := itr.Next()
			if !yield(i, v) {
				return
			}
		}
	}
}

// Slice copies the entries into a new slice.
func (e Entries) Slice() []manifest.Entry {
	out := make([]manifest.Entry, 0, e.Len())
	for _, entry := range e.All() {
		out = append(out, entry)
	}
	return out
}

// Document wraps the entries in a manifest document with the given version.
func (e Entries) Document(version uint64) *manifest.Document {
	return &manifest.Document{Version: version, Entries: e.Slice()}
}

// Counts returns the number of enabled and disabled entries.
func (e Entries) Counts() (enabled, disabled int) {
	for _, entry := range e.All() {
		if entry.Enabled {
			enabled++
		} else {
			disabled++
		}
	}
	return enabled, disabled
}

// Equal reports whether both lists hold the same entries in the same order.
func (e Entries) Equal(other Entries) bool {
	if e.Len() != other.Len() {
		return false
	}
	if e.list == other.list {
		return true
	}
	for i, entry := range e.All() {
		if o, _ := other.At(i); o != entry {
			return false
		}
	}
	return true
}

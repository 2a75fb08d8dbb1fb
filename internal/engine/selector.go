package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danieljhkim/scenable/internal/state"
)

// Resolve returns the 0-based index of the pack identified by selector.
//
// A selector is tried, in order, as a 1-based index, as an exact path
// (trailing slashes ignored), and as a case-insensitive substring of a path
// that must match exactly one pack.
func Resolve(entries state.Entries, selector string) (int, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return -1, fmt.Errorf("%w: empty selector", ErrPackNotFound)
	}

	if n, err := strconv.Atoi(sel); err == nil && n >= 1 && n <= entries.Len() {
		return n - 1, nil
	}

	want := strings.TrimRight(sel, "/")
	for i, entry := range entries.All() {
		if strings.TrimRight(entry.Path, "/") == want {
			return i, nil
		}
	}

	needle := strings.ToLower(sel)
	var matches []int
	for i, entry := range entries.All() {
		if strings.Contains(strings.ToLower(entry.Path), needle) {
			matches = append(matches, i)
		}
	}

	switch len(matches) {
	case 0:
		return -1, fmt.Errorf("%w: %q", ErrPackNotFound, selector)
	case 1:
		return matches[0], nil
	default:
		const shown = 5
		var names []string
		for _, i := range matches[:min(len(matches), shown)] {
			e, _ := entries.At(i)
			names = append(names, strconv.Quote(e.Path))
		}
		if len(matches) > shown {
			names = append(names, fmt.Sprintf("and %d more", len(matches)-shown))
		}
		return -1, fmt.Errorf("%w: %q matches %s", ErrAmbiguousSelector, selector, strings.Join(names, ", "))
	}
}

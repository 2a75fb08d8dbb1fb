package manifest

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates an entry path that cannot be encoded without
// breaking the line grammar (empty, or containing CR/LF).
var ErrInvalidPath = errors.New("invalid scenery pack path")

// ParseError describes where decoding stopped and what it expected there.
type ParseError struct {
	// Offset is the byte offset of the offending token.
	Offset int

	// Line is the 1-based line number of the offending token.
	Line int

	// Expected describes the token the grammar required.
	Expected string

	// Found is a short excerpt of what was there instead.
	Found string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (offset %d): expected %s, found %q", e.Line, e.Offset, e.Expected, e.Found)
}

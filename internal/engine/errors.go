package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPackNotFound indicates a selector that matches no scenery pack.
	ErrPackNotFound = errors.New("scenery pack not found")

	// ErrAmbiguousSelector indicates a selector that matches more than one
	// scenery pack.
	ErrAmbiguousSelector = errors.New("selector matches more than one scenery pack")

	// ErrNotLoaded indicates an operation that needs a manifest to have been
	// read first.
	ErrNotLoaded = errors.New("scenery_packs.ini has not been loaded")
)

// IoError reports a failed filesystem operation on a named path.
type IoError struct {
	// Op is the operation that failed ("read", "write", "backup", ...)
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// errAborted is returned when the user declines a confirmation prompt.
var errAborted = errors.New("aborted")

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirm asks a yes/no question. It is a variable so tests can answer it.
var confirm = func(title, description string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return ok, nil
}

// promptXPlaneDir asks for the X-Plane installation directory. validate is
// run on every submission.
var promptXPlaneDir = func(current string, validate func(string) error) (string, error) {
	dir := current
	err := huh.NewInput().
		Title("X-Plane installation directory").
		Description("The folder that contains \"Custom Scenery\".").
		Placeholder("/path/to/X-Plane 12").
		Value(&dir).
		Validate(validate).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errAborted
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return dir, nil
}

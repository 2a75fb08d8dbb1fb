package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes doc to w in canonical layout: header, version, SCENERY
// marker, one blank line, then one line per entry. Entries are validated
// before anything is written, so a rejected document leaves w untouched.
func Encode(w io.Writer, doc *Document) error {
	if err := Validate(doc); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	bw.WriteString(headerMarker)
	bw.WriteByte('\n')
	bw.WriteString(strconv.FormatUint(doc.Version, 10))
	bw.WriteString(versionSuffix)
	bw.WriteByte('\n')
	bw.WriteString(sceneryMarker)
	bw.WriteString("\n\n")

	for _, entry := range doc.Entries {
		bw.WriteString(entry.Tag())
		bw.WriteByte(' ')
		bw.WriteString(entry.Path)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Marshal returns the canonical encoding of doc.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks that every entry path can be encoded and decoded back
// unchanged.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("manifest: nil document")
	}
	for i, entry := range doc.Entries {
		if err := ValidatePath(entry.Path); err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidatePath rejects paths that would break the line grammar.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if strings.ContainsAny(path, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidPath, path)
	}
	return nil
}

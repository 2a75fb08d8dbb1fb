package manifest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxExcerpt bounds ParseError.Found.
const maxExcerpt = 32

// Decode parses manifest text into a Document. It fails with *ParseError on
// the first token that does not match the grammar; no partial document is
// returned.
func Decode(text string) (*Document, error) {
	d := &decoder{text: text}

	if err := d.expectLine(headerMarker, fmt.Sprintf("%q marker", headerMarker)); err != nil {
		return nil, err
	}

	version, err := d.versionLine()
	if err != nil {
		return nil, err
	}

	if err := d.expectLine(sceneryMarker, fmt.Sprintf("%q marker", sceneryMarker)); err != nil {
		return nil, err
	}

	doc := &Document{Version: version, Entries: []Entry{}}
	for {
		ln, ok := d.next()
		if !ok {
			break
		}
		if ln.content == "" {
			continue
		}
		entry, err := d.entry(ln)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, entry)
	}

	return doc, nil
}

// DecodeBytes is Decode for a byte slice.
func DecodeBytes(data []byte) (*Document, error) {
	return Decode(string(data))
}

// Read reads r to EOF and decodes it.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Decode(string(data))
}

// line is one physical line without its terminator.
type line struct {
	content    string
	start      int
	number     int
	terminated bool
}

type decoder struct {
	text   string
	pos    int
	lineNo int
}

// next returns the next line, stripping "\n" or "\r\n".
func (d *decoder) next() (line, bool) {
	if d.pos >= len(d.text) {
		return line{}, false
	}

	d.lineNo++
	ln := line{start: d.pos, number: d.lineNo}

	rest := d.text[d.pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		ln.content = rest[:i]
		ln.terminated = true
		d.pos += i + 1
	} else {
		ln.content = rest
		d.pos = len(d.text)
	}
	if ln.terminated {
		ln.content = strings.TrimSuffix(ln.content, "\r")
	}

	return ln, true
}

// expectLine requires a newline-terminated line whose content is exactly want.
func (d *decoder) expectLine(want, expected string) error {
	ln, ok := d.next()
	if !ok {
		return d.errorAt(len(d.text), d.lineNo+1, expected)
	}
	if ln.content != want {
		return d.errorAt(ln.start, ln.number, expected)
	}
	if !ln.terminated {
		return d.errorAt(ln.start+len(ln.content), ln.number, "newline")
	}
	return nil
}

// versionLine parses `<digits> Version`.
func (d *decoder) versionLine() (uint64, error) {
	ln, ok := d.next()
	if !ok {
		return 0, d.errorAt(len(d.text), d.lineNo+1, "version number")
	}

	digits := 0
	for digits < len(ln.content) && ln.content[digits] >= '0' && ln.content[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, d.errorAt(ln.start, ln.number, "version number")
	}

	version, err := strconv.ParseUint(ln.content[:digits], 10, 64)
	if err != nil {
		return 0, d.errorAt(ln.start, ln.number, "version number that fits in 64 bits")
	}

	if ln.content[digits:] != versionSuffix {
		return 0, d.errorAt(ln.start+digits, ln.number, fmt.Sprintf("%q", versionSuffix))
	}
	if !ln.terminated {
		return 0, d.errorAt(ln.start+len(ln.content), ln.number, "newline")
	}

	return version, nil
}

// entry parses a non-blank body line. The path is everything after the
// first space following the tag.
func (d *decoder) entry(ln line) (Entry, error) {
	var entry Entry
	var rest string

	// The disabled tag has the enabled tag as a prefix, so it is tried first.
	switch {
	case strings.HasPrefix(ln.content, disabledTag+" "):
		rest = ln.content[len(disabledTag)+1:]
	case strings.HasPrefix(ln.content, enabledTag+" "):
		entry.Enabled = true
		rest = ln.content[len(enabledTag)+1:]
	default:
		return Entry{}, d.errorAt(ln.start, ln.number,
			fmt.Sprintf("%q or %q followed by a space", enabledTag, disabledTag))
	}

	pathStart := ln.start + len(ln.content) - len(rest)
	if rest == "" {
		return Entry{}, d.errorAt(pathStart, ln.number, "scenery pack path")
	}
	if i := strings.IndexByte(rest, '\r'); i >= 0 {
		return Entry{}, d.errorAt(pathStart+i, ln.number, "end of line")
	}

	entry.Path = rest
	return entry, nil
}

func (d *decoder) errorAt(offset, lineNo int, expected string) *ParseError {
	found := ""
	if offset < len(d.text) {
		found = d.text[offset:]
		if i := strings.IndexAny(found, "\r\n"); i >= 0 {
			found = found[:i]
		}
		if len(found) > maxExcerpt {
			found = found[:maxExcerpt]
		}
	}
	if found == "" && offset < len(d.text) {
		found = d.text[offset : offset+1]
	}
	return &ParseError{
		Offset:   offset,
		Line:     lineNo,
		Expected: expected,
		Found:    found,
	}
}

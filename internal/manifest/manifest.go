// Package manifest reads and writes X-Plane scenery_packs.ini files.
//
// The format is line oriented:
//
//	I
//	1000 Version
//	SCENERY
//
//	SCENERY_PACK Custom Scenery/Some Airport/
//	SCENERY_PACK_DISABLED Custom Scenery/Some Mesh/
//
// Decoding is permissive about blank lines in the body and accepts both LF
// and CRLF terminators. Encoding always produces the single canonical layout
// shown above, so decode(encode(d)) == d for every document Encode accepts,
// while encode(decode(t)) == t only when t is already canonical.
package manifest

const (
	// DefaultVersion is the version written for documents that were not
	// decoded from an existing file.
	DefaultVersion uint64 = 1000

	// RelPath is the location of the manifest relative to the X-Plane root.
	RelPath = "Custom Scenery/scenery_packs.ini"

	headerMarker  = "I"
	versionSuffix = " Version"
	sceneryMarker = "SCENERY"
	enabledTag    = "SCENERY_PACK"
	disabledTag   = "SCENERY_PACK_DISABLED"
)

// Entry is one enable/disable directive for a scenery pack.
type Entry struct {
	// Enabled reports whether X-Plane loads this pack.
	Enabled bool `json:"enabled"`

	// Path is the pack directory relative to the X-Plane root. It is opaque:
	// it may contain spaces and is never split further.
	Path string `json:"path"`
}

// Tag returns the manifest tag for the entry.
func (e Entry) Tag() string {
	if e.Enabled {
		return enabledTag
	}
	return disabledTag
}

// Document is a decoded scenery_packs.ini file.
type Document struct {
	// Version is echoed back verbatim when the document is encoded.
	Version uint64 `json:"version"`

	// Entries are kept in file order.
	Entries []Entry `json:"entries"`
}

// Package hash fingerprints manifest contents.
//
// The engine remembers the fingerprint of the bytes it last read or wrote so
// it can tell an external edit of scenery_packs.ini apart from its own save.
// Fingerprints are hex-encoded SHA-256 digests.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Hasher computes content fingerprints.
type Hasher interface {
	// HashBytes returns the fingerprint of data.
	HashBytes(data []byte) string

	// HashReader returns the fingerprint of everything read from r.
	HashReader(r io.Reader) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes returns the hex SHA-256 digest of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader returns the hex SHA-256 digest of the remaining contents of r.
func (h *SHA256Hasher) HashReader(r io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FakeHasher implements Hasher with predetermined fingerprints for testing.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the fingerprint returned for content.
func (h *FakeHasher) SetHash(content, hash string) {
	h.hashes[content] = hash
}

// HashBytes returns the predetermined fingerprint for data, or a
// length-based one when none was set.
func (h *FakeHasher) HashBytes(data []byte) string {
	if hash, ok := h.hashes[string(data)]; ok {
		return hash
	}
	return fmt.Sprintf("fakehash-%d", len(data))
}

// HashReader reads r fully and delegates to HashBytes.
func (h *FakeHasher) HashReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return h.HashBytes(data), nil
}

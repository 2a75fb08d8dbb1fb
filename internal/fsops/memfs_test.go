package fsops

import (
	"errors"
	"io/fs"
	"testing"
)

// MemFS must satisfy FS so engine tests can use it.
var _ FS = (*MemFS)(nil)

func TestMemFS_ReadWrite(t *testing.T) {
	m := NewMemFS()

	if _, err := m.ReadFile("/a/b.ini"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	if err := m.AtomicWrite("/a/b.ini", []byte("hello"), 0600); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	data, err := m.ReadFile("/a/./b.ini")
	if err != nil || string(data) != "hello" {
		t.Fatalf("ReadFile() = %q, %v", data, err)
	}

	// Returned slices are copies.
	data[0] = 'j'
	again, _ := m.ReadFile("/a/b.ini")
	if string(again) != "hello" {
		t.Errorf("stored content was modified through a returned slice: %q", again)
	}

	info, err := m.Stat("/a/b.ini")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 5 || info.Mode().Perm() != 0600 || info.IsDir() {
		t.Errorf("unexpected file info: size %d mode %v dir %v", info.Size(), info.Mode(), info.IsDir())
	}

	if ok, _ := m.Exists("/a"); !ok {
		t.Error("parent directory should be created implicitly")
	}
}

func TestMemFS_ReadDirAndRemove(t *testing.T) {
	m := NewMemFS()
	m.WriteFile("/backups/b.ini", []byte("b"))
	m.WriteFile("/backups/a.ini", []byte("a"))
	if err := m.MkdirAll("/backups/nested", 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	entries, err := m.ReadDir("/backups")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 3 || names[0] != "a.ini" || names[1] != "b.ini" || names[2] != "nested" {
		t.Errorf("ReadDir() names = %v", names)
	}
	if !entries[2].IsDir() {
		t.Error("nested should be a directory")
	}

	if err := m.Remove("/backups"); err == nil {
		t.Error("removing a non-empty directory should fail")
	}
	if err := m.Remove("/backups/a.ini"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := m.Remove("/backups/a.ini"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist for a second remove, got %v", err)
	}
	if _, err := m.ReadDir("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist for a missing directory, got %v", err)
	}
}

func TestMemFS_InjectedErrors(t *testing.T) {
	m := NewMemFS()
	m.WriteFile("/src", []byte("x"))

	boom := errors.New("disk full")
	m.WriteErr = boom
	if err := m.AtomicWrite("/dst", []byte("y"), 0644); !errors.Is(err, boom) {
		t.Errorf("AtomicWrite() error = %v, want %v", err, boom)
	}
	if err := m.Copy("/src", "/dst"); !errors.Is(err, boom) {
		t.Errorf("Copy() error = %v, want %v", err, boom)
	}
	if ok, _ := m.Exists("/dst"); ok {
		t.Error("failed writes must not create files")
	}

	m.WriteErr = nil
	if err := m.Copy("/src", "/dst"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if err := m.Copy("/nope", "/dst2"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist copying a missing file, got %v", err)
	}

	m.ReadErr = boom
	if _, err := m.ReadFile("/dst"); !errors.Is(err, boom) {
		t.Errorf("ReadFile() error = %v, want %v", err, boom)
	}
}

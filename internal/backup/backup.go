// Package backup keeps timestamped copies of scenery_packs.ini.
//
// A backup is a plain copy of the manifest named
// scenery_packs-<UTC stamp>.ini inside the backups directory. The stamp
// layout sorts lexically in chronological order, so listing never needs to
// look at file contents or modification times.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danieljhkim/scenable/internal/clock"
	"github.com/danieljhkim/scenable/internal/fsops"
)

const (
	namePrefix = "scenery_packs-"
	nameSuffix = ".ini"
)

// ErrNotFound indicates that a named backup does not exist.
var ErrNotFound = errors.New("backup not found")

// Info describes one backup.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

// Manager creates, lists and prunes manifest backups in one directory.
type Manager struct {
	fs    fsops.FS
	clock clock.Clock
	dir   string
}

// NewManager creates a Manager storing backups in dir.
func NewManager(fs fsops.FS, clk clock.Clock, dir string) *Manager {
	return &Manager{fs: fs, clock: clk, dir: dir}
}

// Dir returns the backups directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Name returns the backup file name for a creation time.
func Name(t time.Time) string {
	return namePrefix + clock.Stamp(t) + nameSuffix
}

// parseName extracts the creation time and same-second sequence number
// from a backup file name.
func parseName(name string) (created time.Time, seq int, ok bool) {
	if !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, nameSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, namePrefix), nameSuffix)
	// Same-second backups carry a -N suffix.
	if i := strings.IndexByte(stamp, '-'); i >= 0 {
		n, err := strconv.Atoi(stamp[i+1:])
		if err != nil || n < 2 {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:i]
	}
	t, err := clock.ParseStamp(stamp)
	if err != nil {
		return time.Time{}, 0, false
	}
	return t, seq, true
}

// Create copies the file at src into a new backup and returns its info.
func (m *Manager) Create(src string) (*Info, error) {
	if err := m.fs.MkdirAll(m.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	now := m.clock.Now().UTC()
	name := Name(now)
	for n := 2; ; n++ {
		exists, err := m.fs.Exists(filepath.Join(m.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to check backup: %w", err)
		}
		if !exists {
			break
		}
		name = fmt.Sprintf("%s%s-%d%s", namePrefix, clock.Stamp(now), n, nameSuffix)
	}

	dst := filepath.Join(m.dir, name)
	if err := m.fs.Copy(src, dst); err != nil {
		return nil, fmt.Errorf("failed to copy %s to backup: %w", src, err)
	}

	info := &Info{Name: name, Path: dst, CreatedAt: now}
	if fi, err := m.fs.Stat(dst); err == nil {
		info.Size = fi.Size()
	}
	return info, nil
}

// List returns every backup, newest first. A missing directory yields an
// empty list.
func (m *Manager) List() ([]Info, error) {
	exists, err := m.fs.Exists(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check backups directory: %w", err)
	}
	if !exists {
		return []Info{}, nil
	}

	entries, err := m.fs.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := []Info{}
	seqs := map[string]int{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		created, seq, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info := Info{
			Name:      entry.Name(),
			Path:      filepath.Join(m.dir, entry.Name()),
			CreatedAt: created,
		}
		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
		}
		backups = append(backups, info)
		seqs[info.Name] = seq
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return seqs[backups[i].Name] > seqs[backups[j].Name]
	})
	return backups, nil
}

// Path resolves a backup name to its path.
func (m *Manager) Path(name string) (string, error) {
	if err := m.fs.ValidateIdentifier(name); err != nil {
		return "", fmt.Errorf("invalid backup name: %w", err)
	}
	if _, _, ok := parseName(name); !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	path := filepath.Join(m.dir, name)
	exists, err := m.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check backup: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// Read returns the contents of a backup.
func (m *Manager) Read(name string) ([]byte, error) {
	path, err := m.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup %s: %w", name, err)
	}
	return data, nil
}

// Prune removes all but the newest keep backups and returns the names it
// removed. keep <= 0 keeps everything.
func (m *Manager) Prune(keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	backups, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	var removed []string
	for _, b := range backups[keep:] {
		if err := m.fs.Remove(b.Path); err != nil {
			return removed, fmt.Errorf("failed to remove backup %s: %w", b.Name, err)
		}
		removed = append(removed, b.Name)
	}
	return removed, nil
}

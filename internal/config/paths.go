// Package config manages scenable settings and filesystem paths.
//
// Everything scenable writes for itself (settings, manifest backups, logs)
// lives under one root directory, ~/.scenable by default. The X-Plane
// installation it edits is configured separately in the settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv overrides the scenable data directory.
const RootEnv = "SCENABLE_ROOT"

// Paths contains all the filesystem paths used by scenable.
type Paths struct {
	// Root is the base directory for all scenable data (default: ~/.scenable)
	Root string

	// Settings is the path to the settings file
	Settings string

	// Backups is the directory holding manifest backups
	Backups string

	// Logs is the directory holding log files
	Logs string
}

// DefaultPaths returns the default paths for scenable.
// The root can be overridden with the SCENABLE_ROOT environment variable.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".scenable")
	}
	return PathsAt(root), nil
}

// PathsAt returns the layout rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Settings: filepath.Join(root, "settings.yaml"),
		Backups:  filepath.Join(root, "backups"),
		Logs:     filepath.Join(root, "logs"),
	}
}

// LogFile is the path of the JSON log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.Logs, "scenable.log")
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.Backups,
		p.Logs,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

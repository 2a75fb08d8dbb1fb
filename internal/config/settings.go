package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/scenable/internal/fsops"
	"github.com/danieljhkim/scenable/internal/manifest"
)

// ErrNotConfigured indicates that no X-Plane directory has been set up yet.
var ErrNotConfigured = errors.New("x-plane directory not configured (run `scenable setup`)")

// ErrNotInstallation indicates a directory that does not look like an
// X-Plane installation root.
var ErrNotInstallation = errors.New("not an x-plane installation")

// Settings is the persisted user configuration.
type Settings struct {
	// XPlaneDir is the X-Plane installation root. Environment variables are
	// expanded when the file is loaded.
	XPlaneDir string `yaml:"xplane_dir" validate:"required"`

	Backup BackupSettings `yaml:"backup"`
	Log    LogSettings    `yaml:"log"`
}

// BackupSettings controls manifest backups taken before the first save.
type BackupSettings struct {
	Enabled bool `yaml:"enabled"`
	// Keep is how many backups to retain; 0 keeps all of them.
	Keep int `yaml:"keep" validate:"gte=0"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// File enables the JSON log file under the scenable root.
	File bool `yaml:"file"`
}

// DefaultSettings returns the settings used before anything is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Backup: BackupSettings{Enabled: true, Keep: 10},
		Log:    LogSettings{Level: "info", File: true},
	}
}

// LoadSettings reads the settings file at path. A missing file is not an
// error: defaults are returned with found == false.
func LoadSettings(fs fsops.FS, path string) (settings *Settings, found bool, err error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings = DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, false, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	settings.expandEnv()
	settings.applyDefaults()

	return settings, true, nil
}

// Save writes the settings atomically as YAML.
func (s *Settings) Save(fs fsops.FS, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Clone returns a copy that can be modified independently.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Configured reports whether an X-Plane directory has been set.
func (s *Settings) Configured() bool {
	return s != nil && s.XPlaneDir != ""
}

// ManifestPath returns the scenery_packs.ini path inside the X-Plane root.
func (s *Settings) ManifestPath() (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	return filepath.Join(s.XPlaneDir, filepath.FromSlash(manifest.RelPath)), nil
}

// Validate checks the settings, including that XPlaneDir looks like an
// X-Plane installation (it must contain a Custom Scenery directory).
func (s *Settings) Validate(fs fsops.FS) error {
	if err := newValidator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid settings: %s", describe(verrs))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}

	if info, err := fs.Stat(s.XPlaneDir); err != nil || !info.IsDir() {
		return fmt.Errorf("invalid settings: xplane_dir: %s is not an existing directory", s.XPlaneDir)
	}

	customScenery := filepath.Dir(filepath.Join(s.XPlaneDir, filepath.FromSlash(manifest.RelPath)))
	info, err := fs.Stat(customScenery)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s has no %q directory", ErrNotInstallation, s.XPlaneDir, filepath.Base(customScenery))
	}

	return nil
}

func (s *Settings) expandEnv() {
	s.XPlaneDir = os.ExpandEnv(s.XPlaneDir)
}

func (s *Settings) applyDefaults() {
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describe renders validation errors using the YAML key names.
func describe(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", key))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", key, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q (%s)", key, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}

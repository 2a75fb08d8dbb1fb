package integration

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/clock"
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/engine"
	"github.com/danieljhkim/scenable/internal/fsops"
	"github.com/danieljhkim/scenable/internal/hash"
	"github.com/danieljhkim/scenable/internal/state"
)

const initialManifest = "I\r\n" +
	"1000 Version\r\n" +
	"SCENERY\r\n" +
	"\r\n" +
	"SCENERY_PACK Custom Scenery/KSEA Demo Area/\r\n" +
	"SCENERY_PACK_DISABLED Custom Scenery/LOWI Demo Area/\r\n" +
	"SCENERY_PACK Custom Scenery/X-Plane Landmarks - Sydney/\r\n" +
	"SCENERY_PACK *GLOBAL_AIRPORTS*\r\n"

// testEnv is an X-Plane installation in a temp directory driven by a real
// engine.
type testEnv struct {
	eng      *engine.Engine
	clock    *clock.FakeClock
	logs     *bytes.Buffer
	xplane   string
	manifest string
	backups  string
}

func setupTestEngine(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	xplane := filepath.Join(root, "X-Plane 12")
	customScenery := filepath.Join(xplane, "Custom Scenery")
	if err := os.MkdirAll(customScenery, 0755); err != nil {
		t.Fatalf("failed to create Custom Scenery: %v", err)
	}
	manifestPath := filepath.Join(customScenery, "scenery_packs.ini")
	if err := os.WriteFile(manifestPath, []byte(initialManifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	paths := config.PathsAt(filepath.Join(root, ".scenable"))
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("failed to create scenable root: %v", err)
	}

	fs := fsops.NewRealFS()
	settings := config.DefaultSettings()
	settings.XPlaneDir = xplane
	settings.Backup.Keep = 2
	if err := settings.Validate(fs); err != nil {
		t.Fatalf("settings are invalid: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	store := state.NewStore(state.NewAppState(settings), state.WithLogger(logger))
	eng := engine.New(store, fs, hash.NewSHA256Hasher(), backup.NewManager(fs, clk, paths.Backups), logger)

	return &testEnv{
		eng:      eng,
		clock:    clk,
		logs:     &logs,
		xplane:   xplane,
		manifest: manifestPath,
		backups:  paths.Backups,
	}
}

func (env *testEnv) load(t *testing.T) *engine.LoadResult {
	t.Helper()
	result, err := env.eng.Load(context.Background(), &engine.LoadRequest{ResetHistory: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return result
}

func (env *testEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(env.manifest)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	return string(data)
}

func (env *testEnv) write(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(env.manifest, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func (env *testEnv) setEnabled(t *testing.T, mode engine.Mode, selectors ...string) *engine.SetEnabledResult {
	t.Helper()
	result, err := env.eng.SetEnabled(context.Background(), &engine.SetEnabledRequest{
		Selectors: selectors,
		Mode:      mode,
	})
	if err != nil {
		t.Fatalf("SetEnabled(%v) error = %v", selectors, err)
	}
	return result
}

func (env *testEnv) save(t *testing.T) *engine.SaveResult {
	t.Helper()
	result, err := env.eng.Save(context.Background(), &engine.SaveRequest{})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return result
}

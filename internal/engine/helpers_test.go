package engine

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/clock"
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/fsops"
	"github.com/danieljhkim/scenable/internal/hash"
	"github.com/danieljhkim/scenable/internal/state"
)

const (
	testManifest = "/xp/Custom Scenery/scenery_packs.ini"
	testBackups  = "/home/user/.scenable/backups"
)

const sampleManifest = "I\n" +
	"1100 Version\n" +
	"SCENERY\n" +
	"\n" +
	"SCENERY_PACK Custom Scenery/KSEA Demo Area/\n" +
	"SCENERY_PACK_DISABLED Custom Scenery/LOWI Demo Area/\n" +
	"SCENERY_PACK Custom Scenery/X-Plane Landmarks - Chicago/\n" +
	"SCENERY_PACK *GLOBAL_AIRPORTS*\n"

type testEnv struct {
	eng   *Engine
	fs    *fsops.MemFS
	clock *clock.FakeClock
	logs  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := fsops.NewMemFS()
	fs.WriteFile(testManifest, []byte(sampleManifest))

	clk := clock.NewFakeClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))

	settings := config.DefaultSettings()
	settings.XPlaneDir = "/xp"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := state.NewStore(state.NewAppState(settings), state.WithLogger(logger))
	eng := New(store, fs, hash.NewSHA256Hasher(), backup.NewManager(fs, clk, testBackups), logger)

	return &testEnv{eng: eng, fs: fs, clock: clk, logs: &logs}
}

// load performs the initial load and fails the test on error.
func (env *testEnv) load(t *testing.T) *LoadResult {
	t.Helper()
	result, err := env.eng.Load(context.Background(), &LoadRequest{ResetHistory: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return result
}

func (env *testEnv) read(t *testing.T) string {
	t.Helper()
	data, err := env.fs.ReadFile(testManifest)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	return string(data)
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/config"
	"github.com/danieljhkim/scenable/internal/engine"
	"github.com/danieljhkim/scenable/internal/fsops"
)

const testManifest = "I\n" +
	"1100 Version\n" +
	"SCENERY\n" +
	"\n" +
	"SCENERY_PACK Custom Scenery/KSEA Demo Area/\n" +
	"SCENERY_PACK_DISABLED Custom Scenery/LOWI Demo Area/\n" +
	"SCENERY_PACK *GLOBAL_AIRPORTS*\n"

type cliEnv struct {
	root     string
	xplane   string
	manifest string
}

// setupTestEnv creates an X-Plane installation and an empty scenable root
// in temporary directories.
func setupTestEnv(t *testing.T) *cliEnv {
	t.Helper()
	tmpDir := t.TempDir()

	xplane := filepath.Join(tmpDir, "X-Plane 12")
	if err := os.MkdirAll(filepath.Join(xplane, "Custom Scenery"), 0755); err != nil {
		t.Fatalf("Failed to create Custom Scenery: %v", err)
	}
	manifest := filepath.Join(xplane, "Custom Scenery", "scenery_packs.ini")
	if err := os.WriteFile(manifest, []byte(testManifest), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	root := filepath.Join(tmpDir, "scenable")
	t.Setenv(config.RootEnv, root)

	return &cliEnv{root: root, xplane: xplane, manifest: manifest}
}

func (env *cliEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(env.manifest)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}
	return string(data)
}

func (env *cliEnv) backups(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(env.root, "backups"))
	if err != nil {
		t.Fatalf("Failed to read backups: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// executeCommand runs the root command with args and returns everything it
// wrote. Flags are reset first since cobra keeps them between executions.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v, output: %q", err, out)
	}
	return v
}

func TestCommands_NotConfigured(t *testing.T) {
	setupTestEnv(t)

	for _, args := range [][]string{{"list"}, {"status"}, {"enable", "1"}, {"backup", "restore", "x"}} {
		_, err := executeCommand(t, args...)
		if !errors.Is(err, config.ErrNotConfigured) {
			t.Errorf("%v: expected ErrNotConfigured, got %v", args, err)
		}
	}
}

func TestSetupCommand(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "setup", env.xplane, "--keep", "3")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Using X-Plane at "+env.xplane) {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "3 packs (2 enabled)") {
		t.Errorf("expected pack counts in output, got %q", out)
	}

	paths := config.PathsAt(env.root)
	data, err := os.ReadFile(paths.Settings)
	if err != nil {
		t.Fatalf("settings file not written: %v", err)
	}
	if !strings.Contains(string(data), "keep: 3") {
		t.Errorf("expected keep: 3 in settings, got:\n%s", data)
	}

	// Later commands use the saved directory.
	out, err = executeCommand(t, "list", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	packs := decodeJSON[[]map[string]any](t, out)
	if len(packs) != 3 {
		t.Errorf("expected 3 packs, got %d", len(packs))
	}
}

func TestSetupCommand_RejectsNonInstallation(t *testing.T) {
	setupTestEnv(t)

	_, err := executeCommand(t, "setup", t.TempDir())
	if !errors.Is(err, config.ErrNotInstallation) {
		t.Errorf("expected ErrNotInstallation, got %v", err)
	}
}

func TestSetupCommand_Prompt(t *testing.T) {
	env := setupTestEnv(t)

	oldTerminal, oldPrompt := stdinIsTerminal, promptXPlaneDir
	t.Cleanup(func() { stdinIsTerminal, promptXPlaneDir = oldTerminal, oldPrompt })
	stdinIsTerminal = func() bool { return true }

	var validated error
	promptXPlaneDir = func(current string, validate func(string) error) (string, error) {
		validated = validate("/definitely/not/x-plane")
		return env.xplane, nil
	}

	if _, err := executeCommand(t, "setup"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if validated == nil {
		t.Error("expected the prompt validator to reject a missing directory")
	}

	settings, found, err := config.LoadSettings(fsops.NewRealFS(), config.PathsAt(env.root).Settings)
	if err != nil || !found {
		t.Fatalf("LoadSettings() = %v, found %v", err, found)
	}
	if settings.XPlaneDir != env.xplane {
		t.Errorf("XPlaneDir = %q, want %q", settings.XPlaneDir, env.xplane)
	}
}

func TestListCommand_Filters(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "list", "--xplane-dir", env.xplane)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"1  [x] Custom Scenery/KSEA Demo Area/", "2  [ ] Custom Scenery/LOWI Demo Area/"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = executeCommand(t, "list", "--xplane-dir", env.xplane, "--disabled", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	packs := decodeJSON[[]struct {
		Index   int    `json:"index"`
		Path    string `json:"path"`
		Enabled bool   `json:"enabled"`
	}](t, out)
	if len(packs) != 1 || packs[0].Index != 2 || packs[0].Enabled {
		t.Errorf("unexpected disabled packs: %+v", packs)
	}

	if _, err := executeCommand(t, "list", "--xplane-dir", env.xplane, "--enabled", "--disabled"); err == nil {
		t.Error("expected --enabled and --disabled to be mutually exclusive")
	}
}

func TestEnableDisableCommands(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "enable", "lowi", "--xplane-dir", env.xplane)
	if err != nil {
		t.Fatalf("enable error = %v", err)
	}
	if !strings.Contains(out, "Updated 1 scenery pack") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(env.read(t), "SCENERY_PACK Custom Scenery/LOWI Demo Area/\n") {
		t.Errorf("LOWI not enabled on disk:\n%s", env.read(t))
	}
	if n := len(env.backups(t)); n != 1 {
		t.Errorf("expected 1 backup, got %d", n)
	}

	// Enabling an enabled pack is a no-op and writes nothing.
	out, err = executeCommand(t, "enable", "1", "--xplane-dir", env.xplane)
	if err != nil {
		t.Fatalf("enable error = %v", err)
	}
	if !strings.Contains(out, "Nothing to change.") {
		t.Errorf("unexpected output: %q", out)
	}

	out, err = executeCommand(t, "toggle", "1", "GLOBAL", "--xplane-dir", env.xplane, "--json")
	if err != nil {
		t.Fatalf("toggle error = %v", err)
	}
	result := decodeJSON[struct {
		Mode    string              `json:"mode"`
		Changed int                 `json:"changed"`
		Packs   []engine.PackChange `json:"packs"`
		Save    *engine.SaveResult  `json:"save"`
	}](t, out)
	if result.Mode != "toggle" || result.Changed != 2 || result.Save == nil || result.Save.DryRun {
		t.Errorf("unexpected toggle result: %+v", result)
	}

	want := "I\n1100 Version\nSCENERY\n\n" +
		"SCENERY_PACK_DISABLED Custom Scenery/KSEA Demo Area/\n" +
		"SCENERY_PACK Custom Scenery/LOWI Demo Area/\n" +
		"SCENERY_PACK_DISABLED *GLOBAL_AIRPORTS*\n"
	if got := env.read(t); got != want {
		t.Errorf("manifest:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestDisableAll_DryRun(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "disable", "--all", "--dry-run", "--xplane-dir", env.xplane)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Dry run: would disable 2 scenery packs") {
		t.Errorf("unexpected output: %q", out)
	}
	if env.read(t) != testManifest {
		t.Error("dry run must not write the manifest")
	}

	if _, err := executeCommand(t, "disable", "--all", "--xplane-dir", env.xplane); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(env.read(t), "SCENERY_PACK ") {
		t.Errorf("expected every pack disabled:\n%s", env.read(t))
	}
}

func TestToggleCommand_BadSelectors(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown pack", []string{"toggle", "EGLL"}, engine.ErrPackNotFound},
		{"ambiguous", []string{"toggle", "Demo"}, engine.ErrAmbiguousSelector},
		{"index out of range", []string{"disable", "9"}, engine.ErrPackNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, append(tt.args, "--xplane-dir", env.xplane)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if env.read(t) != testManifest {
				t.Error("a failed selector must not change the manifest")
			}
		})
	}

	if _, err := executeCommand(t, "enable", "--xplane-dir", env.xplane); err == nil {
		t.Error("expected an error without selectors")
	}
	if _, err := executeCommand(t, "enable", "1", "--all", "--xplane-dir", env.xplane); err == nil {
		t.Error("expected an error for selectors with --all")
	}
}

func TestStatusCommand_JSON(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "status", "--xplane-dir", env.xplane, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	status := decodeJSON[engine.StatusResult](t, out)
	if status.Total != 3 || status.Enabled != 2 || status.Version != 1100 {
		t.Errorf("unexpected status: %+v", status)
	}
	if !status.Synchronized || status.DiskChanged {
		t.Errorf("a fresh load should be clean: %+v", status)
	}
}

func TestBackupAndDiffCommands(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := executeCommand(t, "diff", "--xplane-dir", env.xplane); !errors.Is(err, backup.ErrNotFound) {
		t.Fatalf("expected backup.ErrNotFound without backups, got %v", err)
	}

	out, err := executeCommand(t, "backup", "create", "--xplane-dir", env.xplane, "--json")
	if err != nil {
		t.Fatalf("backup create error = %v", err)
	}
	created := decodeJSON[backup.Info](t, out)

	if _, err := executeCommand(t, "disable", "KSEA", "--xplane-dir", env.xplane); err != nil {
		t.Fatalf("disable error = %v", err)
	}

	out, err = executeCommand(t, "diff", created.Name, "--xplane-dir", env.xplane, "--json")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	diff := decodeJSON[engine.DiffResult](t, out)
	if len(diff.Changes) != 1 || diff.Changes[0].Kind != engine.ChangeDisabled {
		t.Errorf("unexpected diff: %+v", diff)
	}

	out, err = executeCommand(t, "backup", "ls", "--json")
	if err != nil {
		t.Fatalf("backup ls error = %v", err)
	}
	infos := decodeJSON[[]backup.Info](t, out)
	if len(infos) == 0 {
		t.Fatal("expected backups to be listed")
	}

	// Without a terminal, restore needs --yes.
	if _, err := executeCommand(t, "backup", "restore", created.Name, "--xplane-dir", env.xplane); err == nil ||
		!strings.Contains(err.Error(), "--yes") {
		t.Errorf("expected restore to require --yes, got %v", err)
	}

	if _, err := executeCommand(t, "backup", "restore", created.Name, "--xplane-dir", env.xplane, "--yes"); err != nil {
		t.Fatalf("backup restore error = %v", err)
	}
	if env.read(t) != testManifest {
		t.Errorf("expected the original manifest after restore, got:\n%s", env.read(t))
	}

	if _, err := executeCommand(t, "backup", "restore", "scenery_packs-20000101T000000Z.ini", "--xplane-dir", env.xplane, "--yes"); !errors.Is(err, backup.ErrNotFound) {
		t.Errorf("expected backup.ErrNotFound, got %v", err)
	}
}

func TestBackupRestore_Confirm(t *testing.T) {
	env := setupTestEnv(t)

	out, err := executeCommand(t, "backup", "create", "--xplane-dir", env.xplane, "--json")
	if err != nil {
		t.Fatalf("backup create error = %v", err)
	}
	created := decodeJSON[backup.Info](t, out)
	if _, err := executeCommand(t, "enable", "--all", "--xplane-dir", env.xplane); err != nil {
		t.Fatalf("enable error = %v", err)
	}
	enabled := env.read(t)

	oldTerminal, oldConfirm := stdinIsTerminal, confirm
	t.Cleanup(func() { stdinIsTerminal, confirm = oldTerminal, oldConfirm })
	stdinIsTerminal = func() bool { return true }

	var asked string
	confirm = func(title, description string) (bool, error) {
		asked = title
		return false, nil
	}
	if _, err := executeCommand(t, "backup", "restore", created.Name, "--xplane-dir", env.xplane); !errors.Is(err, errAborted) {
		t.Errorf("expected errAborted when declined, got %v", err)
	}
	if !strings.Contains(asked, created.Name) {
		t.Errorf("prompt should name the backup, got %q", asked)
	}
	if env.read(t) != enabled {
		t.Error("a declined restore must not touch the manifest")
	}

	confirm = func(string, string) (bool, error) { return true, nil }
	if _, err := executeCommand(t, "backup", "restore", created.Name, "--xplane-dir", env.xplane); err != nil {
		t.Fatalf("backup restore error = %v", err)
	}
	if env.read(t) != testManifest {
		t.Error("expected the backup to be restored after confirming")
	}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/engine"
)

var setupKeep int

var setupCmd = &cobra.Command{
	Use:   "setup [xplane-dir]",
	Short: "Configure the X-Plane installation",
	Long: `Point scenable at an X-Plane installation.

The directory must contain "Custom Scenery". When it is omitted and stdin
is a terminal, scenable asks for it. The choice is saved in the settings
file under the scenable root (~/.scenable, or $SCENABLE_ROOT).`,
	Example: `  scenable setup "/Applications/X-Plane 12"
  scenable setup --keep 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		settings := rt.settings.Clone()

		validate := func(dir string) error {
			candidate := settings.Clone()
			candidate.XPlaneDir = dir
			return candidate.Validate(rt.fs)
		}

		dir := settings.XPlaneDir
		switch {
		case len(args) == 1:
			dir = args[0]
		case xplaneDir != "":
			// --xplane-dir is already applied to the loaded settings
		case stdinIsTerminal():
			dir, err = promptXPlaneDir(dir, validate)
			if err != nil {
				return err
			}
		case dir == "":
			return errors.New("no X-Plane directory given (pass it as an argument)")
		}

		if dir, err = filepath.Abs(dir); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		settings.XPlaneDir = dir
		if cmd.Flags().Changed("keep") {
			settings.Backup.Keep = setupKeep
		}
		if err := settings.Validate(rt.fs); err != nil {
			return err
		}

		if err := settings.Save(rt.fs, rt.paths.Settings); err != nil {
			return err
		}
		rt.logger.Info("saved settings", "path", rt.paths.Settings, "xplane_dir", settings.XPlaneDir)

		output := struct {
			Settings  string             `json:"settings"`
			XPlaneDir string             `json:"xplane_dir"`
			Packs     *engine.LoadResult `json:"packs,omitempty"`
		}{Settings: rt.paths.Settings, XPlaneDir: settings.XPlaneDir}

		// X-Plane writes scenery_packs.ini on its first start, so a fresh
		// installation may not have one yet.
		var loadErr error
		if err := rt.engine.SetSettings(settings); err != nil {
			return err
		}
		output.Packs, loadErr = rt.engine.Load(cmd.Context(), &engine.LoadRequest{ResetHistory: true})

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, output)
		}

		PrintSuccess(out, fmt.Sprintf("Using X-Plane at %s", settings.XPlaneDir))
		PrintLabelValue(out, "Settings", rt.paths.Settings)
		switch {
		case loadErr == nil:
			PrintLabelValue(out, "Packs", fmt.Sprintf("%s (%d enabled)",
				PrintCount(output.Packs.Total, "pack", "packs"), output.Packs.Enabled))
		case errors.Is(loadErr, os.ErrNotExist):
			PrintWarning(out, "scenery_packs.ini does not exist yet; start X-Plane once to create it")
		default:
			PrintWarning(out, fmt.Sprintf("Could not read scenery_packs.ini: %v", loadErr))
		}
		return nil
	},
}

func init() {
	setupCmd.Flags().IntVar(&setupKeep, "keep", 0, "Number of manifest backups to keep (0 keeps all)")
}

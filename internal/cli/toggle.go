package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/engine"
)

var (
	toggleDryRun bool
	toggleAll    bool
)

const selectorHelp = `A selector is the pack's number from "scenable list", its exact path, or
a case-insensitive part of its path that matches exactly one pack.`

var enableCmd = &cobra.Command{
	Use:   "enable <selector>...",
	Short: "Enable scenery packs",
	Long: `Enable the selected scenery packs and save scenery_packs.ini.

` + selectorHelp,
	Example: `  scenable enable 3
  scenable enable "Custom Scenery/KSEA Demo Area/"
  scenable enable ksea lowi
  scenable enable --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabled(cmd, args, engine.ModeEnable)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <selector>...",
	Short: "Disable scenery packs",
	Long: `Disable the selected scenery packs and save scenery_packs.ini.

` + selectorHelp,
	Example: `  scenable disable 3
  scenable disable --all --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabled(cmd, args, engine.ModeDisable)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <selector>...",
	Short: "Toggle scenery packs",
	Long: `Flip the selected scenery packs between enabled and disabled and save
scenery_packs.ini.

` + selectorHelp,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabled(cmd, args, engine.ModeToggle)
	},
}

// setEnabledOutput is the JSON shape of enable, disable and toggle.
type setEnabledOutput struct {
	Mode    string              `json:"mode"`
	Packs   []engine.PackChange `json:"packs,omitempty"`
	Changed int                 `json:"changed"`
	Save    *engine.SaveResult  `json:"save,omitempty"`
}

func runSetEnabled(cmd *cobra.Command, args []string, mode engine.Mode) error {
	switch {
	case toggleAll && len(args) > 0:
		return errors.New("--all cannot be combined with selectors")
	case !toggleAll && len(args) == 0:
		return fmt.Errorf("%s requires at least one selector or --all", mode)
	}

	ctx := cmd.Context()
	rt, err := newEngine(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	output := &setEnabledOutput{Mode: mode.String()}
	if toggleAll {
		result, err := rt.engine.SetAll(ctx, mode == engine.ModeEnable)
		if err != nil {
			return err
		}
		output.Changed = result.Changed
	} else {
		result, err := rt.engine.SetEnabled(ctx, &engine.SetEnabledRequest{
			Selectors: args,
			Mode:      mode,
		})
		if err != nil {
			return err
		}
		output.Packs = result.Packs
		output.Changed = result.Changed
	}

	if output.Changed > 0 {
		output.Save, err = rt.engine.Save(ctx, &engine.SaveRequest{DryRun: toggleDryRun})
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(out, output)
	}
	printSetEnabled(out, output)
	return nil
}

func printSetEnabled(out io.Writer, output *setEnabledOutput) {
	for _, p := range output.Packs {
		if p.Changed {
			printPack(out, p.Index, p.Entry)
		}
	}

	if output.Changed == 0 {
		PrintEmptyState(out, "Nothing to change.")
		return
	}

	packs := PrintCount(output.Changed, "scenery pack", "scenery packs")
	if output.Save.DryRun {
		PrintWarning(out, fmt.Sprintf("Dry run: would %s %s (scenery_packs.ini not written)", output.Mode, packs))
		return
	}

	if output.Save.Backup != nil {
		PrintInfo(out, fmt.Sprintf("Backed up scenery_packs.ini to %s", output.Save.Backup.Name))
	}
	PrintSuccess(out, fmt.Sprintf("Updated %s in %s", packs, output.Save.Path))
}

func init() {
	for _, c := range []*cobra.Command{enableCmd, disableCmd, toggleCmd} {
		c.Flags().BoolVar(&toggleDryRun, "dry-run", false, "Show what would change without writing scenery_packs.ini")
	}
	enableCmd.Flags().BoolVar(&toggleAll, "all", false, "Enable every scenery pack")
	disableCmd.Flags().BoolVar(&toggleAll, "all", false, "Disable every scenery pack")
}

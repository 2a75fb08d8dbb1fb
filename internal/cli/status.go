package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scenery pack status",
	Long: `Display where scenery_packs.ini lives, how many packs it lists and how
many of them are enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		result, err := rt.engine.Status(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, "Scenery Packs")
		PrintLabelValue(out, "Manifest", result.Path)
		PrintLabelValue(out, "Version", fmt.Sprintf("%d", result.Version))
		PrintLabelValue(out, "Packs", PrintCount(result.Total, "pack", "packs"))
		PrintLabelValueWithColor(out, "Enabled", fmt.Sprintf("%d", result.Enabled), successColor)
		PrintLabelValueWithColor(out, "Disabled", fmt.Sprintf("%d", result.Disabled), dimColor)
		state, clr := syncState(result.Synchronized)
		PrintLabelValueWithColor(out, "State", state, clr)

		backups, err := rt.engine.ListBackups(cmd.Context())
		if err != nil {
			return err
		}
		if len(backups) > 0 {
			PrintLabelValue(out, "Last backup", backups[0].Name)
		} else {
			PrintLabelValue(out, "Last backup", "none")
		}
		return nil
	},
}

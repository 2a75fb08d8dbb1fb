package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [backup]",
	Short: "Show changes since a backup",
	Long: `Compare scenery_packs.ini with a backup and list the packs that were
enabled, disabled, added or removed since then.

Without an argument the newest backup is used. Run "scenable backup ls" to
see the available backups.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		result, err := rt.engine.DiffBackup(cmd.Context(), name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		if len(result.Changes) == 0 {
			PrintEmptyState(out, fmt.Sprintf("No changes since %s.", result.Path))
			return nil
		}

		PrintSection(out, "Changes since "+result.Path)
		for _, change := range result.Changes {
			char, clr := changeChar(change.Kind)
			_, _ = clr.Fprintf(out, "  %s  %s\n", char, change.Path)
		}
		_, _ = fmt.Fprintln(out)
		PrintInfo(out, PrintCount(len(result.Changes), "change", "changes"))
		return nil
	},
}

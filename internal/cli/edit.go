package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit scenery packs interactively",
	Long: `Open an interactive editor for scenery_packs.ini.

Changes stay in memory until saved with "s" and can be undone with "u" and
redone with "r". Press "?" inside the editor for all key bindings. If the
file is changed by another program while the editor is open, unmodified
lists are reloaded automatically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newEngineWith(cmd.Context(), cmd, runtimeOptions{quiet: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		return tui.Run(cmd.Context(), rt.engine, rt.logger)
	},
}

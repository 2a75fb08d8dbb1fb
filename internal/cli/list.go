package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/manifest"
)

var (
	listEnabled  bool
	listDisabled bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List scenery packs",
	Long: `List the scenery packs in scenery_packs.ini in load order.

The number in the first column can be used as a selector for enable,
disable and toggle.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		type listedPack struct {
			Index int `json:"index"`
			manifest.Entry
		}

		var packs []listedPack
		for i, entry := range rt.engine.State().Entries.All() {
			if listEnabled && !entry.Enabled || listDisabled && entry.Enabled {
				continue
			}
			packs = append(packs, listedPack{Index: i + 1, Entry: entry})
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if packs == nil {
				packs = []listedPack{}
			}
			return outputJSON(out, packs)
		}

		if len(packs) == 0 {
			PrintEmptyState(out, "No scenery packs found.")
			return nil
		}
		for _, p := range packs {
			printPack(out, p.Index, p.Entry)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listEnabled, "enabled", false, "Only list enabled packs")
	listCmd.Flags().BoolVar(&listDisabled, "disabled", false, "Only list disabled packs")
	listCmd.MarkFlagsMutuallyExclusive("enabled", "disabled")
}

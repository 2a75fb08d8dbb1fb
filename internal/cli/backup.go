package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/scenable/internal/backup"
	"github.com/danieljhkim/scenable/internal/config"
)

var restoreYes bool

// backupCmd is the parent command for manifest backups.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage scenery_packs.ini backups",
	Long: `Manage backups of scenery_packs.ini.

scenable backs the manifest up before it first overwrites it in a session,
keeping as many backups as the settings allow.`,
}

var backupLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List backups, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		infos, err := rt.engine.ListBackups(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, infos)
		}

		if len(infos) == 0 {
			PrintSection(out, "Backups")
			PrintEmptyState(out, "No backups found.")
			return nil
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{
				info.Name,
				info.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				fmt.Sprintf("%d", info.Size),
			})
		}
		PrintSection(out, "Backups in "+rt.paths.Backups)
		PrintTable(out, []string{"NAME", "CREATED", "BYTES"}, rows)
		return nil
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up scenery_packs.ini now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		info, err := rt.engine.CreateBackup(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, info)
		}
		PrintSuccess(out, fmt.Sprintf("Created backup %s", info.Name))
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Replace scenery_packs.ini with a backup",
	Long: `Replace scenery_packs.ini with the named backup.

The current file is backed up first (when backups are enabled), so a
restore can itself be undone by restoring that backup. You are asked to
confirm unless --yes is given; without a terminal --yes is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// The manifest may be missing or broken, which is when a restore is
		// most needed, so it is not read first.
		rt, err := newRuntime(cmd, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()
		if !rt.settings.Configured() {
			return config.ErrNotConfigured
		}

		// Resolve before asking so a typo fails fast.
		if _, err := rt.backups.Path(name); err != nil {
			return err
		}

		if !restoreYes {
			if !stdinIsTerminal() {
				return fmt.Errorf("refusing to restore %s without confirmation (use --yes)", name)
			}
			ok, err := confirm(
				fmt.Sprintf("Restore %s?", name),
				"scenery_packs.ini will be replaced by this backup.",
			)
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}

		result, err := rt.engine.RestoreBackup(cmd.Context(), name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}
		if result.SafetyBackup != nil {
			PrintInfo(out, fmt.Sprintf("Backed up the current scenery_packs.ini to %s", result.SafetyBackup.Name))
		}
		PrintSuccess(out, fmt.Sprintf("Restored %s (%s, %d enabled)", result.Backup,
			PrintCount(result.Load.Total, "pack", "packs"), result.Load.Enabled))
		return nil
	},
}

// backupNames completes backup names for restore and diff.
func backupNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rt, err := newRuntime(cmd, runtimeOptions{quiet: true})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer rt.Close()

	infos, err := rt.engine.ListBackups(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return backupInfoNames(infos), cobra.ShellCompDirectiveNoFileComp
}

func backupInfoNames(infos []backup.Info) []string {
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}

func init() {
	backupRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Restore without asking for confirmation")
	backupRestoreCmd.ValidArgsFunction = backupNames
	diffCmd.ValidArgsFunction = backupNames

	backupCmd.AddCommand(backupLsCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

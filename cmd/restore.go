package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the Claude Code settings backup",
		Long: `Put settings.json.backup, written by the last apply, back in place of
settings.json. The active profile in the store is not changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			if err := cm.RestoreSettings(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Restored "+cm.GetSettingsPath()+" from backup"))
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"ccswitch/config"
	"ccswitch/config/storage"
	syncpkg "ccswitch/config/sync"

	"github.com/spf13/cobra"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:     "apply <profile>",
		Aliases: []string{"use", "switch"},
		Short:   "Apply a profile to Claude Code",
		Long: `Write a profile into the Claude Code settings file and make it active.

The previous settings file is copied to settings.json.backup first.
By default the settings file is replaced by the profile's env block.
With --merge the other settings and env keys are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd, config.WithSettingsOptions(syncpkg.Options{Merge: merge}))
			if err != nil {
				return err
			}

			p, err := cm.Resolve(args[0])
			if err != nil {
				return err
			}

			if err := cm.Apply(p.ID); err != nil {
				return fmt.Errorf("failed to apply profile %q: %w", p.Name, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Applied profile %s to %s", p.Name, cm.GetSettingsPath())))
			if storage.HasBackup(cm.GetSettingsPath()) {
				fmt.Fprintln(out, dimStyle.Render("Previous settings saved to "+storage.BackupPath(cm.GetSettingsPath())))
			}
			fmt.Fprintln(out, dimStyle.Render("Restart Claude Code for the change to take effect"))
			printWarnings(cmd, cm.Warnings(p))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&merge, "merge", "m", false, "Keep unrelated settings and env keys")

	return cmd
}

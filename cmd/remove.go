package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <profile>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a profile",
		Long: `Remove a profile by name, id, or unique id prefix.

Removing the active profile leaves no profile active. The Claude Code
settings file is not changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			p, err := cm.Resolve(args[0])
			if err != nil {
				return err
			}

			if err := cm.Delete(p.ID); err != nil {
				return fmt.Errorf("failed to remove profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Removed profile: %s", p.Name)))
			return nil
		},
	}
}

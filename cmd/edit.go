package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	flags := &attributeFlags{}

	cmd := &cobra.Command{
		Use:   "edit <profile>",
		Short: "Edit an existing profile",
		Long: `Edit fields of an existing profile.

Only the flags you pass are changed. Pass an empty model flag to clear
that override, e.g. --opus "".

Examples:
  ccswitch edit Work --url https://new.example.com
  ccswitch edit Work --name Personal --key sk-new`,
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

			attrs := p.Attributes
			if !flags.applyTo(cmd, &attrs) {
				return errors.New("no changes specified, pass at least one field flag such as --url or --name")
			}

			if err := cm.RenameOrUpdate(p.ID, attrs); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}

			updated, err := cm.Get(p.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Updated profile: %s", updated.Name)))
			if updated.ID == cm.ActiveID() {
				fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Run 'ccswitch apply "+updated.Name+"' to write the changes to Claude Code"))
			}
			printWarnings(cmd, cm.Warnings(updated))
			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

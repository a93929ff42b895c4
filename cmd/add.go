package cmd

import (
	"fmt"

	"ccswitch/config"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	flags := &attributeFlags{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new profile",
		Long: `Add a new profile.

Without a name the profile is called "` + config.DefaultNewProfileName + `". A name that is
already taken gets a numeric suffix, e.g. "Work 2".

Examples:
  ccswitch add
  ccswitch add Work --url https://api.example.com --key sk-xxx
  ccswitch add Proxy --url http://localhost:8080 --sonnet claude-sonnet-4-5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			name := config.DefaultNewProfileName
			if len(args) == 1 {
				name = args[0]
			}

			p, err := cm.CreateProfile(name)
			if err != nil {
				return fmt.Errorf("failed to add profile: %w", err)
			}

			attrs := p.Attributes
			if flags.applyTo(cmd, &attrs) {
				if err := cm.RenameOrUpdate(p.ID, attrs); err != nil {
					return fmt.Errorf("profile %q was added but its fields were not saved: %w", p.Name, err)
				}
				if p, err = cm.Get(p.ID); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Added profile: %s (%s)", p.Name, shortID(p.ID))))
			printWarnings(cmd, cm.Warnings(p))
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

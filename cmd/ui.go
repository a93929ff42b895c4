package cmd

import (
	"ccswitch/internal/tui"

	"github.com/spf13/cobra"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the interactive interface",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cm)
		},
	}
}

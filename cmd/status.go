package cmd

import (
	"errors"
	"fmt"
	"os"

	"ccswitch/config/storage"
	syncpkg "ccswitch/config/sync"

	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active profile and the Claude Code settings",
		Long: `Show the active profile, the base URL currently in the Claude Code
settings file, and which profile it matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store:     %s\n", cm.GetStorePath())
			fmt.Fprintf(out, "Settings:  %s\n", cm.GetSettingsPath())

			if p, ok := cm.Active(); ok {
				fmt.Fprintf(out, "Active:    %s\n", p.Name)
			} else {
				fmt.Fprintln(out, "Active:    none")
			}

			baseURL, err := syncpkg.ReadCurrentBaseURL(cm.GetSettingsPath())
			switch {
			case errors.Is(err, os.ErrNotExist):
				fmt.Fprintln(out, "Base URL:  no settings file")
			case err != nil:
				fmt.Fprintln(out, "Base URL:  "+warningStyle.Render(fmt.Sprintf("unreadable (%v)", err)))
			case baseURL == "":
				fmt.Fprintln(out, "Base URL:  not set")
			default:
				fmt.Fprintf(out, "Base URL:  %s\n", baseURL)
			}

			if p, ok := cm.DetectCurrent(); ok {
				fmt.Fprintf(out, "Matches:   %s\n", p.Name)
			} else {
				fmt.Fprintln(out, "Matches:   no profile")
			}

			backup := "none"
			if storage.HasBackup(cm.GetSettingsPath()) {
				backup = storage.BackupPath(cm.GetSettingsPath())
			}
			fmt.Fprintf(out, "Backup:    %s\n", backup)
			return nil
		},
	}
}

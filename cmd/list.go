package cmd

import (
	"fmt"
	"io"
	"strings"

	"ccswitch/config/models"
	"ccswitch/internal/utils"

	"github.com/spf13/cobra"
)

const shortIDLength = 8

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all profiles",
		Long: `List all profiles in display order.

The active profile is marked with *. A profile whose base URL matches the
one currently in the Claude Code settings is tagged [settings].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			profiles := cm.Profiles()
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No profiles available, add one with 'ccswitch add'")
				return nil
			}

			current, hasCurrent := cm.DetectCurrent()
			activeID := cm.ActiveID()
			for _, p := range profiles {
				writeProfileLine(out, p, p.ID == activeID, hasCurrent && p.ID == current.ID)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, dimStyle.Render("* indicates the active profile"))
			return nil
		},
	}
}

func writeProfileLine(out io.Writer, p models.Profile, active, inSettings bool) {
	marker := " "
	if active {
		marker = "*"
	}

	host := "-"
	if p.BaseURL != "" {
		host = utils.DisplayHost(p.BaseURL)
	}

	key := "(no key)"
	if p.APIKey != "" {
		key = utils.MaskAPIKey(p.APIKey)
	}

	line := fmt.Sprintf("%s %-24s %-32s %-14s %s", marker, p.Name, host, key, shortID(p.ID))
	if inSettings {
		line += " [settings]"
	}
	fmt.Fprintln(out, strings.TrimRight(line, " "))
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"ccswitch/config/models"
	"ccswitch/internal/utils"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var showKey bool

	cmd := &cobra.Command{
		Use:   "show <profile>",
		Short: "Show the details of a profile",
		Long: `Show every field of a profile.

The profile may be given by name, id, or a unique id prefix.
The API key is masked unless --show-key is set.`,
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

			out := cmd.OutOrStdout()
			key := utils.MaskAPIKey(p.APIKey)
			switch {
			case p.APIKey == "":
				key = "(empty)"
			case showKey:
				key = p.APIKey
			}

			active := "no"
			if p.ID == cm.ActiveID() {
				active = "yes"
			}

			fmt.Fprintf(out, "Name:      %s\n", p.Name)
			fmt.Fprintf(out, "ID:        %s\n", p.ID)
			fmt.Fprintf(out, "Active:    %s\n", active)
			fmt.Fprintf(out, "Base URL:  %s\n", orDash(p.BaseURL))
			fmt.Fprintf(out, "API Key:   %s\n", key)
			fmt.Fprintf(out, "Timeout:   %s ms\n", strconv.Itoa(p.TimeoutMS))
			for _, tier := range models.Tiers {
				model := p.ModelMappings.Get(tier)
				if model == "" {
					model = "(default)"
				}
				fmt.Fprintf(out, "%-10s %s\n", strings.ToUpper(tier[:1])+tier[1:]+":", model)
			}

			printWarnings(cmd, cm.Warnings(p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showKey, "show-key", false, "Print the API key in full")

	return cmd
}

// printWarnings writes advisory messages to stderr
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("⚠️  "+w))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

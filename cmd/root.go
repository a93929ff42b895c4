package cmd

import (
	"log"
	"os"

	"ccswitch/config"
	"ccswitch/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Output styles shared by the commands
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// rootOptions holds the persistent flags
type rootOptions struct {
	storePath    string
	settingsPath string
}

// manager opens the profile store selected by flags, env vars or defaults.
// Recovered failures are logged to the command's stderr.
func (o *rootOptions) manager(cmd *cobra.Command, extra ...config.Option) (*config.Manager, error) {
	storePath := o.storePath
	if storePath == "" {
		var err error
		if storePath, err = config.DefaultStorePath(); err != nil {
			return nil, err
		}
	}

	settingsPath := o.settingsPath
	if settingsPath == "" {
		var err error
		if settingsPath, err = config.DefaultSettingsPath(); err != nil {
			return nil, err
		}
	}

	opts := append([]config.Option{config.WithLogger(log.New(cmd.ErrOrStderr(), "", 0))}, extra...)
	return config.NewManager(storePath, settingsPath, opts...), nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ccswitch",
		Short: "Claude Code API profile switcher",
		Long: `Manage named Claude Code connection profiles and switch between them.

Each profile holds a base URL, an API key, a request timeout and optional
model overrides. Applying a profile writes it into Claude Code's settings.json.

Run without a subcommand on a terminal to open the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTerminal(os.Stdin) || !tui.IsTerminal(os.Stdout) {
				return cmd.Help()
			}
			cm, err := opts.manager(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cm)
		},
	}

	root.PersistentFlags().StringVar(&opts.storePath, "store", "", "Profile store file (default $"+config.StorePathEnv+" or ~/.config/ccswitch/profiles.json)")
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Claude Code settings file (default $"+config.ClaudeConfigDirEnv+"/settings.json or ~/.claude/settings.json)")

	root.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newRemoveCmd(opts),
		newApplyCmd(opts),
		newStatusCmd(opts),
		newRestoreCmd(opts),
		newUICmd(opts),
	)

	return root
}

// Execute executes the root command
func Execute() error {
	rootCmd := newRootCmd()
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`ccswitch {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}

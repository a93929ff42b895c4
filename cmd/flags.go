package cmd

import (
	"ccswitch/config/models"

	"github.com/spf13/cobra"
)

// attributeFlags are the profile fields settable from the command line
type attributeFlags struct {
	name    string
	url     string
	key     string
	timeout int
	haiku   string
	sonnet  string
	opus    string
}

// register defines the flags on cmd; --name only where a profile is renamed
func (f *attributeFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVarP(&f.name, "name", "n", "", "Profile name")
	}
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "API base URL")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "API key")
	cmd.Flags().IntVarP(&f.timeout, "timeout", "t", 0, "Request timeout in milliseconds")
	cmd.Flags().StringVar(&f.haiku, "haiku", "", "Model used for the haiku tier")
	cmd.Flags().StringVar(&f.sonnet, "sonnet", "", "Model used for the sonnet tier")
	cmd.Flags().StringVar(&f.opus, "opus", "", "Model used for the opus tier")
}

// applyTo copies every flag the user set into attrs and reports whether any was set.
// An explicitly empty model flag clears that override.
func (f *attributeFlags) applyTo(cmd *cobra.Command, attrs *models.Attributes) bool {
	changed := false
	set := func(flag string, apply func()) {
		if cmd.Flags().Changed(flag) {
			apply()
			changed = true
		}
	}

	set("name", func() { attrs.Name = f.name })
	set("url", func() { attrs.BaseURL = f.url })
	set("key", func() { attrs.APIKey = f.key })
	set("timeout", func() { attrs.TimeoutMS = f.timeout })
	set("haiku", func() { attrs.ModelMappings.Haiku = f.haiku })
	set("sonnet", func() { attrs.ModelMappings.Sonnet = f.sonnet })
	set("opus", func() { attrs.ModelMappings.Opus = f.opus })

	return changed
}

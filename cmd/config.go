package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration svgcheck is running with, after defaults,
the config file, environment variables and flags have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Fprintln(out, ui.FormatMuted("# "+appWorkspace.ConfigPath))
		fmt.Fprint(out, string(data))
		return nil
	},
}

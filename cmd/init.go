package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/pkg/config"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName + " to the project",
	Long: `Create ` + config.FileName + ` in the project directory with the default settings:
  - readme          : README.md
  - svg_dir         : images/svg/
  - size_budget     : 1024
  - vnu_jar         : node_modules/vnu-jar/build/dist/vnu.jar
  - filter_pattern  : .*aria-label.*

Every setting is optional; svgcheck runs with these defaults when no file exists.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := appWorkspace.ConfigPath

	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Fprintln(out, ui.FormatWarning("Config already exists"))
		fmt.Fprintln(out, ui.FormatMuted("Location: "+path))
		fmt.Fprintln(out, ui.FormatMuted("Use --force to overwrite"))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to write config"))
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Created %s", appWorkspace.Rel(path))))
	fmt.Fprintln(out, ui.FormatInfo("Run 'svgcheck doctor' to verify the setup"))
	return nil
}

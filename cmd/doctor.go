package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/pkg/config"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the project and validator are set up",
	Long: `Diagnose issues with your svgcheck setup.

Checks for:
  - README and svg directory
  - Configuration file
  - Java and the vnu jar (required for W3C validation)`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.FormatTitle("svgcheck doctor"))
	fmt.Fprintln(out)

	failed := 0
	step := func(name string, check func() error) {
		if !checkStep(out, name, check) {
			failed++
		}
	}

	// 1. Project layout
	step("README", func() error {
		if !appWorkspace.HasReadme() {
			return fmt.Errorf("not found at %s", appWorkspace.ReadmePath)
		}
		index, err := readmeRepo.Load(ctx)
		if err != nil {
			return err
		}
		if len(index) == 0 {
			return fmt.Errorf("no size rows found (expected <td>.../svg/name.svg...<br>N bytes)")
		}
		return nil
	})

	step("SVG Directory", func() error {
		if !appWorkspace.HasSVGDir() {
			return fmt.Errorf("missing at %s", appWorkspace.SVGPath)
		}
		assets, err := assetRepo.List(ctx)
		if err != nil {
			return err
		}
		if len(assets) == 0 {
			return fmt.Errorf("contains no .svg files")
		}
		return nil
	})

	// 2. Config (optional)
	checkStep(out, "Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing (using defaults, run 'svgcheck init' to create one)")
		}
		return nil
	})

	// 3. Validator
	step("java (Validator runtime)", func() error {
		if !vnuValidator.IsAvailable() {
			return fmt.Errorf("%q not found in PATH", appConfig.Java)
		}
		return nil
	})

	step("vnu.jar (W3C Validator)", func() error {
		if !vnuValidator.HasJar() {
			return fmt.Errorf("not found at %s (npm install vnu-jar, or set %s)", appConfig.VnuJar, config.EnvVnuJar)
		}
		return nil
	})

	fmt.Fprintln(out)
	if failed > 0 {
		fmt.Fprintln(out, ui.FormatError(fmt.Sprintf("%d problem(s) found", failed)))
		return errChecksFailed
	}
	fmt.Fprintln(out, ui.FormatSuccess("Ready to check"))
	return nil
}

// checkStep runs a check function and prints the result nicely
func checkStep(out io.Writer, name string, check func() error) bool {
	err := check()
	if err == nil {
		fmt.Fprintf(out, "%s %s\n", ui.FormatSuccess("✔"), name)
		return true
	}
	fmt.Fprintf(out, "%s %s\n", ui.FormatError("✘"), name)
	fmt.Fprintf(out, "    %s\n", ui.StyleMuted.Render(err.Error()))
	return false
}

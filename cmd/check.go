package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var (
	checkSkipValidation bool
	checkQuiet          bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every check over the svg directory",
	Long: `Cross-check the svg directory against the README and the W3C validator.

For every .svg file:
  - should be under 1KB
  - should be included in readme
  - should match readme size
  - should be validated by the w3c validator

Then, once for the whole README:
  - all files in readme should exist

The validator (java -jar vnu.jar) runs once over the whole directory.
Exits with status 1 if any check fails.`,
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd)
}

// addCheckFlags registers the check flags on cmd. The root command shares them.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&checkSkipValidation, "skip-validation", false, "Do not run the W3C validator")
	cmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Only print failing checks and the summary")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	resp, err := checkService.Execute(getContext(cmd), services.CheckRequest{
		SkipValidation: checkSkipValidation || appConfig.SkipValidation,
		Progress: func(stage string) {
			if !checkQuiet {
				fmt.Fprintln(out, ui.FormatInfo(stage))
			}
		},
	})
	if err != nil {
		return err
	}

	renderReport(out, resp.Report, checkQuiet)
	renderSummary(out, resp)

	if !resp.Report.Passed() {
		return errChecksFailed
	}
	return nil
}

// renderReport prints one block per file, then the README orphan check
func renderReport(out io.Writer, report *domain.Report, quiet bool) {
	fmt.Fprintln(out)

	for _, fr := range report.Files {
		if quiet && fr.Passed() {
			continue
		}

		fmt.Fprintf(out, "%s %s\n", ui.FormatFileName(fr.Asset.Filename), ui.FormatMuted("("+ui.FormatBytes(fr.Asset.Size)+")"))
		for _, check := range fr.Checks {
			if quiet && check.Passed {
				continue
			}
			if report.ValidationSkipped && check.Name == domain.CheckValidMarkup {
				fmt.Fprintf(out, "  %s\n", ui.FormatSkipped(string(check.Name)))
				continue
			}
			renderCheck(out, check)
		}
	}

	orphans := report.OrphanCheck()
	if !quiet || !orphans.Passed {
		fmt.Fprintln(out)
		renderCheck(out, orphans)
	}
}

func renderCheck(out io.Writer, check domain.CheckResult) {
	fmt.Fprintf(out, "  %s\n", ui.FormatCheck(check.Passed, string(check.Name)))
	if check.Passed || check.Detail == "" {
		return
	}
	for _, line := range strings.Split(check.Detail, "\n") {
		fmt.Fprintf(out, "      %s\n", ui.FormatMuted(line))
	}
}

func renderSummary(out io.Writer, resp *services.CheckResponse) {
	report := resp.Report
	fmt.Fprintln(out)

	summary := fmt.Sprintf("%d files, %d checks, %d failed (%s)",
		len(report.Files), report.CheckCount(), report.FailureCount(), resp.Duration.Round(time.Millisecond))

	if report.Passed() {
		fmt.Fprintln(out, ui.FormatSuccess(summary))
	} else {
		fmt.Fprintln(out, ui.FormatError(summary))
	}

	if report.ValidationSkipped {
		fmt.Fprintln(out, ui.FormatWarning("W3C validation was skipped"))
	}
}

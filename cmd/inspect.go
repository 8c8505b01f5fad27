package cmd

import (
	"fmt"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var inspectValidate bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [icon]",
	Short: "Show everything known about one icon",
	Long: `Show the size, README entry and check results for a single icon.

Without an argument, pick the icon with fuzzy search.
The .svg extension may be omitted.

Examples:
  svgcheck inspect check
  svgcheck inspect arrow-left.svg --validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectValidate, "validate", false, "Run every check (including the W3C validator) and show this icon's results")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)
	out := cmd.OutOrStdout()

	var row *services.InventoryRow
	if len(args) == 0 {
		resp, err := inventoryService.Execute(ctx, services.InventoryRequest{})
		if err != nil {
			return err
		}
		if resp.Total == 0 {
			fmt.Fprintln(out, ui.FormatWarning("No icons found"))
			return nil
		}

		idx, err := fuzzyfinder.Find(
			resp.Rows,
			func(i int) string { return resp.Rows[i].Filename },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return describeRow(resp.Rows[i], appConfig.SizeBudget)
			}),
		)
		if err != nil {
			// Aborted with Esc / Ctrl+C
			return nil
		}
		row = &resp.Rows[idx]
	} else {
		name := args[0]
		if !domain.IsSVG(name) {
			name += domain.SVGSuffix
		}
		found, err := inventoryService.Find(ctx, name)
		if err != nil {
			return err
		}
		row = found
	}

	fmt.Fprintln(out, ui.FormatFileName(row.Filename))
	fmt.Fprintln(out, describeRow(*row, appConfig.SizeBudget))

	if !inspectValidate || !row.OnDisk {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatInfo("Running checks..."))
	resp, err := checkService.Execute(ctx, services.CheckRequest{SkipValidation: appConfig.SkipValidation})
	if err != nil {
		return err
	}

	for _, fr := range resp.Report.Files {
		if fr.Asset.Filename != row.Filename {
			continue
		}
		for _, check := range fr.Checks {
			renderCheck(out, check)
		}
		if !fr.Passed() {
			return errChecksFailed
		}
	}
	return nil
}

// describeRow renders the key facts about one icon, one per line
func describeRow(row services.InventoryRow, budget int64) string {
	var lines []string

	if row.OnDisk {
		lines = append(lines, ui.RenderKeyValue("Size", ui.FormatBytes(row.Size)))
	} else {
		lines = append(lines, ui.RenderKeyValue("Size", "not on disk"))
	}

	if row.InReadme {
		lines = append(lines, ui.RenderKeyValue("README", ui.FormatBytes(row.Declared)))
	} else {
		lines = append(lines, ui.RenderKeyValue("README", "not listed"))
	}

	lines = append(lines, ui.RenderKeyValue("Budget", fmt.Sprintf("under %d bytes", budget)))

	if row.OnDisk && row.Size < budget {
		lines = append(lines, ui.RenderKeyValue("Headroom", ui.FormatBytes(budget-row.Size)))
	}

	lines = append(lines, ui.RenderKeyValue("Status", row.Status()))

	return strings.Join(lines, "\n")
}

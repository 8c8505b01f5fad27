package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/docindex"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var (
	sizesProblems bool
	sizesCopy     bool
)

var sizesCmd = &cobra.Command{
	Use:     "sizes",
	Aliases: []string{"ls"},
	Short:   "List icon sizes next to the sizes in the README",
	Long: `Show every icon found on disk or in the README with its actual and declared size.

Status is one of:
  ok            README size matches the file
  mismatch      README size is out of date
  undocumented  file is not listed in the README
  orphan        README lists a file that does not exist

Use --copy to put README cells for every out-of-date or undocumented icon
on the clipboard. (alias: ls)`,
	RunE: runSizes,
}

func init() {
	sizesCmd.Flags().BoolVarP(&sizesProblems, "problems", "p", false, "Only show icons whose README entry is wrong")
	sizesCmd.Flags().BoolVar(&sizesCopy, "copy", false, "Copy corrected README cells to the clipboard")
}

func runSizes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	resp, err := inventoryService.Execute(getContext(cmd), services.InventoryRequest{
		OnlyProblems: sizesProblems,
	})
	if err != nil {
		return err
	}

	if resp.Total == 0 {
		if sizesProblems {
			fmt.Fprintln(out, ui.FormatSuccess("All README sizes match"))
		} else {
			fmt.Fprintln(out, ui.FormatWarning("No icons found"))
		}
		return nil
	}

	fmt.Fprint(out, renderSizesTable(resp.Rows, appConfig.SizeBudget))

	if !sizesCopy {
		return nil
	}

	rows := readmeCells(resp.Rows, appConfig.SVGDir)
	if len(rows) == 0 {
		fmt.Fprintln(out, ui.FormatSuccess("README sizes are up to date, nothing to copy"))
		return nil
	}

	snippet := strings.Join(rows, "\n")
	if err := clipboard.WriteAll(snippet); err != nil {
		fmt.Fprintln(out, ui.FormatWarning("Could not access clipboard, printing instead:"))
		fmt.Fprintln(out, snippet)
		return nil
	}

	fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Copied %d README cell(s) to clipboard", len(rows))))
	return nil
}

// renderSizesTable renders the inventory with over-budget and wrong rows highlighted
func renderSizesTable(rows []services.InventoryRow, budget int64) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "FILE"},
		{Header: "SIZE", Align: "right"},
		{Header: "README", Align: "right"},
		{Header: "STATUS"},
	})

	for _, row := range rows {
		size := "-"
		if row.OnDisk {
			size = strconv.FormatInt(row.Size, 10)
		}
		declared := "-"
		if row.InReadme {
			declared = strconv.FormatInt(row.Declared, 10)
		}

		status := row.Status()
		if row.OnDisk && row.Size >= budget {
			status += ", over budget"
		}

		cells := []string{row.Filename, size, declared, status}
		if row.Matches() && row.Size < budget {
			table.AddRow(cells)
		} else {
			table.AddStyledRow(cells, ui.StyleError)
		}
	}

	return table.Render()
}

// readmeCells returns table cells carrying the real size for every icon
// whose README entry is missing or wrong
func readmeCells(rows []services.InventoryRow, svgDir string) []string {
	var cells []string
	for _, row := range rows {
		if !row.OnDisk || row.Matches() {
			continue
		}
		cells = append(cells, docindex.FormatRow(svgDir, row.Filename, row.Size))
	}
	return cells
}


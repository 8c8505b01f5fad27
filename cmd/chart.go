package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var chartOutput string

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render an HTML bar chart of icon sizes against the budget",
	Long: `Write a standalone HTML page charting the size of every icon on disk,
its README size, and a line at the size budget.

Example:
  svgcheck chart --out sizes.html`,
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "out", "o", "icon-sizes.html", "Output HTML file")
}

func runChart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	resp, err := inventoryService.Execute(getContext(cmd), services.InventoryRequest{})
	if err != nil {
		return err
	}

	bar := buildSizeChart(resp.Rows, appConfig.SizeBudget)

	path := chartOutput
	if !filepath.IsAbs(path) {
		path = filepath.Join(appWorkspace.RootPath, path)
	}

	if err := writeChart(bar, path); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.FormatSuccess("Chart written to "+appWorkspace.Rel(path)))
	return nil
}

// writeChart renders bar to path. The file is only reported written once Close succeeds.
func writeChart(bar *charts.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

// buildSizeChart charts icons that exist on disk. Missing README entries plot as 0.
func buildSizeChart(rows []services.InventoryRow, budget int64) *charts.Bar {
	var (
		names    []string
		actual   []opts.BarData
		declared []opts.BarData
	)

	for _, row := range rows {
		if !row.OnDisk {
			continue
		}
		names = append(names, row.Filename)
		actual = append(actual, opts.BarData{Name: row.Filename, Value: row.Size})
		declared = append(declared, opts.BarData{Name: row.Filename, Value: row.Declared})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "svgcheck"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Icon sizes",
			Subtitle: fmt.Sprintf("%d icons, budget under %d bytes", len(names), budget),
		}),
	)

	bar.SetXAxis(names).
		AddSeries("On disk", actual,
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "budget", YAxis: budget}),
		).
		AddSeries("README", declared)

	return bar
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn represents a column in the table
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table represents a data table
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	// Styles overrides the row style per row index when set
	Styles map[int]lipgloss.Style
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
		Styles:  map[int]lipgloss.Style{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// AddStyledRow adds a row rendered with its own style (e.g. errors in red)
func (t *Table) AddStyledRow(cells []string, style lipgloss.Style) {
	t.Styles[len(t.Rows)] = style
	t.AddRow(cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var builder strings.Builder

	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = max(lipgloss.Width(col.Header), col.Width)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}

	// Header
	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padString(col.Header, colWidths[i], col.Align)
	}
	builder.WriteString(StyleTableHeader.Render(strings.Join(headerParts, "  ")))
	builder.WriteString("\n")

	// Separator
	separatorParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		separatorParts[i] = strings.Repeat("─", colWidths[i])
	}
	builder.WriteString(StyleTableBorder.Render(strings.Join(separatorParts, "  ")))
	builder.WriteString("\n")

	// Rows
	for idx, row := range t.Rows {
		rowParts := make([]string, len(t.Columns))
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rowParts[i] = padString(cell, colWidths[i], t.Columns[i].Align)
		}

		rowStyle, ok := t.Styles[idx]
		if !ok {
			if idx%2 == 0 {
				rowStyle = StyleTableRow
			} else {
				rowStyle = StyleTableRowAlt
			}
		}

		builder.WriteString(rowStyle.Render(strings.Join(rowParts, "  ")))
		builder.WriteString("\n")
	}

	return builder.String()
}

// padString pads a string to the specified display width with alignment
func padString(s string, width int, align string) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}

	padding := width - w

	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}

// FormatBytes renders a byte count the way the README does
func FormatBytes(n int64) string {
	return fmt.Sprintf("%d bytes", n)
}

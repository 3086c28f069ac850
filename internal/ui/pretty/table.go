package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// RowKind selects the style of a table row.
type RowKind int

const (
	RowNormal RowKind = iota
	RowFailed
	RowSkipped
)

// TableRow is one row of cells, in column order.
type TableRow struct {
	Cells []string
	Kind  RowKind
}

// TableFormatter formats rows as a styled, width-constrained table.
// The last column absorbs any shrinking needed to fit the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats headers and rows. An empty row set yields "".
func (t *TableFormatter) FormatTable(headers []string, rows []TableRow) string {
	if len(rows) == 0 || len(headers) == 0 {
		return ""
	}

	widths := t.columnWidths(headers, rows)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.rowStyle(row.Kind).Render(formatCells(row.Cells, widths)))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows []TableRow) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = max(minColumnWidth, lipgloss.Width(header))
	}

	for _, row := range rows {
		for i, cell := range row.Cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	total := totalWidth(widths)
	if total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
	}

	return widths
}

func totalWidth(widths []int) int {
	total := 1
	for _, width := range widths {
		total += width + tablePadding
	}
	return total
}

func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(widths)))
}

func (t *TableFormatter) rowStyle(kind RowKind) lipgloss.Style {
	switch kind {
	case RowFailed:
		return t.styles.TableFailedRow
	case RowSkipped:
		return t.styles.TableSkippedRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatCells pads each cell to its column width. Missing cells are blank.
func formatCells(cells []string, widths []int) string {
	var builder strings.Builder
	builder.WriteString(" ")
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = truncateString(cells[i], width)
		}
		builder.WriteString(cell)
		if i < len(widths)-1 {
			builder.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)+tablePadding))
		}
	}
	return builder.String()
}

// truncateString truncates a string to maxLen cells, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if lipgloss.Width(str) <= maxLen {
		return str
	}
	runes := []rune(str)
	if maxLen <= 3 {
		return string(runes[:min(maxLen, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

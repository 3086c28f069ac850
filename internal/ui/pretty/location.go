package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatLocation formats a tab position as name:line:col. line and column
// are 0-based and printed 1-based.
func (s *Styles) FormatLocation(tabName string, line, column int) string {
	return s.TabName.Render(tabName) + s.Location.Render(fmt.Sprintf(":%d:%d", line+1, column+1))
}

// FormatFinal formats an offset in the final text with its line and column
// (0-based, printed 1-based).
func (s *Styles) FormatFinal(offset, line, column int) string {
	return s.Bold.Render("final") + s.Location.Render(fmt.Sprintf(":%d:%d", line+1, column+1)) +
		s.Dim.Render(fmt.Sprintf(" (offset %d)", offset))
}

// FormatMapping joins the two ends of a translated position.
func (s *Styles) FormatMapping(from, to string) string {
	return "  " + from + s.Arrow.Render("  ->  ") + to + "\n"
}

// FormatUnmapped formats a position that has no counterpart.
func (s *Styles) FormatUnmapped(from string) string {
	return "  " + from + s.Arrow.Render("  ->  ") + s.Warning.Render("no mapping") + "\n"
}

// FormatSourceContext formats the source line with a caret under the
// 0-based byte column, measured in display cells.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "      "

	line = strings.TrimRight(line, "\r\n")
	builder.WriteString(indent + s.SourceLine.Render(expandTabs(line)) + "\n")

	if column >= 0 && column <= len(line) {
		padding := indent + strings.Repeat(" ", lipgloss.Width(expandTabs(line[:column])))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// expandTabs widens tab characters so the caret lines up with the text.
func expandTabs(line string) string {
	return strings.ReplaceAll(line, "\t", "    ")
}

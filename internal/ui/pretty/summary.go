package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/srcmap/pkg/document"
)

const (
	summaryDividerWidth = 40
	wordTab             = "tab"
	wordTabs            = "tabs"
)

// FormatStageStatus returns a styled one-word status for a stage result.
func (s *Styles) FormatStageStatus(result document.StageResult) string {
	switch {
	case result.Err != nil:
		return s.Error.Render("failed")
	case result.Skipped:
		return s.Dim.Render("skipped")
	default:
		return s.Success.Render("ok")
	}
}

// FormatSummaryOneLine formats a snapshot as a single line.
// Example: "2 tabs, 120 -> 180 bytes, syntax 6 edits, compile 3 edits".
func (s *Styles) FormatSummaryOneLine(snap *document.Snapshot) string {
	if snap == nil {
		return s.Dim.Render("No document") + "\n"
	}

	tabWord := wordTabs
	if len(snap.Tabs) == 1 {
		tabWord = wordTab
	}

	parts := []string{
		fmt.Sprintf("%d %s", len(snap.Tabs), tabWord),
		fmt.Sprintf("%d -> %d bytes", len(snap.Original), len(snap.Final)),
	}

	for _, stage := range snap.Stages {
		label := s.StageName.Render(stage.Name)
		if stage.Err != nil || stage.Skipped {
			parts = append(parts, label+" "+s.FormatStageStatus(stage))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d edits", label, stage.Edits))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats a snapshot as a summary block.
func (s *Styles) FormatSummary(snap *document.Snapshot) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if snap == nil {
		builder.WriteString(s.Dim.Render("  No document") + "\n")
		return builder.String()
	}

	builder.WriteString("  Tabs:           " + s.SummaryValue.Render(strconv.Itoa(len(snap.Tabs))) + "\n")
	builder.WriteString("  Original bytes: " + s.SummaryValue.Render(strconv.Itoa(len(snap.Original))) + "\n")
	builder.WriteString("  Final bytes:    " + s.SummaryValue.Render(strconv.Itoa(len(snap.Final))) + "\n")
	if snap.Generation > 0 {
		builder.WriteString("  Generation:     " + s.SummaryValue.Render(strconv.FormatUint(snap.Generation, 10)) + "\n")
	}

	builder.WriteString("\n")

	if err := snap.Err(); err != nil {
		builder.WriteString(s.Error.Render("Build stopped: " + err.Error()))
	} else {
		builder.WriteString(s.Success.Render("Build completed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

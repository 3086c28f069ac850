package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/srcmap/internal/ui/pretty"
	"github.com/yaklabco/srcmap/pkg/tabs"
)

//nolint:gochecknoglobals // Read-only table layouts.
var (
	tabHeaders   = []string{"TAB", "NAME", "LANG", "LINES", "BYTES", "START", "FINAL"}
	stageHeaders = []string{"STAGE", "STATUS", "EDITS", "BYTES", "ERROR"}
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportMappings implements Reporter.
func (r *TextReporter) ReportMappings(_ context.Context, mappings []Mapping) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, mapping := range mappings {
		tabSide := r.formatTab(mapping.Tab)
		finalSide := r.formatFinal(mapping.Final)

		from, to := tabSide, finalSide
		if mapping.Direction == ToTab {
			from, to = finalSide, tabSide
		}

		if mapping.Mapped {
			fmt.Fprint(r.bw, r.styles.FormatMapping(from, to))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatUnmapped(from))
		}

		if mapping.Span != nil {
			fmt.Fprintln(r.bw, "      "+r.styles.Dim.Render(
				fmt.Sprintf("covers [%d, %d) %q", mapping.Span.Start, mapping.Span.Stop, mapping.Span.Text)))
		}

		if r.opts.ShowContext && mapping.Tab.Name != "" && mapping.Tab.Line != tabs.NoMapping {
			fmt.Fprint(r.bw, r.styles.FormatSourceContext(mapping.SourceLine, mapping.Tab.Column))
		}
	}

	return nil
}

func (r *TextReporter) formatTab(point TabPoint) string {
	if point.Name == "" || point.Line == tabs.NoMapping {
		return r.styles.Location.Render(fmt.Sprintf("tab %d offset %d", point.Tab, point.Offset))
	}
	return r.styles.FormatLocation(point.Name, point.Line, point.Column)
}

func (r *TextReporter) formatFinal(point FinalPoint) string {
	if point.Line == tabs.NoMapping {
		return r.styles.Location.Render(fmt.Sprintf("final offset %d", point.Offset))
	}
	return r.styles.FormatFinal(point.Offset, point.Line, point.Column)
}

// ReportInspection implements Reporter.
func (r *TextReporter) ReportInspection(_ context.Context, inspection *Inspection) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	table := pretty.NewTableFormatter(r.styles, r.opts.TermWidth)

	fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("Tabs"))
	if len(inspection.Tabs) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  No tabs"))
	} else {
		rows := make([]pretty.TableRow, 0, len(inspection.Tabs))
		for _, tab := range inspection.Tabs {
			rows = append(rows, pretty.TableRow{Cells: []string{
				strconv.Itoa(tab.Index),
				tab.Name,
				tab.Language,
				strconv.Itoa(tab.Lines),
				strconv.Itoa(tab.Length),
				strconv.Itoa(tab.Start),
				formatOffset(tab.FinalStart),
			}})
		}
		fmt.Fprint(r.bw, table.FormatTable(tabHeaders, rows))
	}

	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("Stages"))
	if len(inspection.Stages) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  No stages configured"))
	} else {
		rows := make([]pretty.TableRow, 0, len(inspection.Stages))
		for _, stage := range inspection.Stages {
			row := pretty.TableRow{Cells: []string{
				stage.Name,
				stage.Status,
				strconv.Itoa(stage.Edits),
				strconv.Itoa(stage.OutputBytes),
				stage.Error,
			}}
			switch stage.Status {
			case StatusFailed:
				row.Kind = pretty.RowFailed
			case StatusSkipped:
				row.Kind = pretty.RowSkipped
			}
			rows = append(rows, row)
		}
		fmt.Fprint(r.bw, table.FormatTable(stageHeaders, rows))
	}

	if r.opts.ShowSummary && inspection.Snapshot != nil {
		fmt.Fprint(r.bw, r.styles.FormatSummary(inspection.Snapshot))
	}

	return nil
}

func formatOffset(offset int) string {
	if offset == tabs.NoMapping {
		return "-"
	}
	return strconv.Itoa(offset)
}

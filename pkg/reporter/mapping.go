package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/tabs"
)

var (
	// ErrNoSuchTab is returned for a tab index outside the document.
	ErrNoSuchTab = errors.New("no such tab")

	// ErrNoSuchLine is returned for a line outside its tab.
	ErrNoSuchLine = errors.New("no such line")
)

// Direction tells which coordinate space a query started in.
type Direction string

const (
	ToTab   Direction = "to-tab"
	ToFinal Direction = "to-final"
)

// TabPoint is a position in one tab of the original document.
// Line and Column are 0-based.
type TabPoint struct {
	Tab    int
	Name   string
	Offset int
	Line   int
	Column int
}

// FinalPoint is a position in the final text. Line and Column are 0-based.
type FinalPoint struct {
	Offset int
	Line   int
	Column int
}

// Span is the original text an interval query covers, in tab offsets.
type Span struct {
	Start int
	Stop  int
	Text  string
}

// Mapping is the answer to one position query.
type Mapping struct {
	Direction Direction
	Tab       TabPoint
	Final     FinalPoint

	// Mapped is false when the query has no counterpart; only the queried
	// side is then filled in.
	Mapped bool

	// Span is set for interval queries.
	Span *Span

	// SourceLine is the tab line holding Tab, without its terminator.
	SourceLine string
}

// Mapper answers position queries against one snapshot.
type Mapper struct {
	snap       *document.Snapshot
	finalLines *tabs.Lines
}

// NewMapper prepares queries against snap.
func NewMapper(snap *document.Snapshot) *Mapper {
	return &Mapper{
		snap:       snap,
		finalLines: tabs.BuildLines(snap.Final),
	}
}

// FromFinal maps an offset in the final text back to its tab.
func (m *Mapper) FromFinal(offset int) Mapping {
	mapping := Mapping{
		Direction: ToTab,
		Final:     m.finalPoint(offset),
	}

	pos, ok := m.snap.FinalToTab(offset)
	if !ok {
		return mapping
	}

	mapping.Mapped = true
	mapping.Tab = m.tabPoint(pos)
	mapping.SourceLine = m.sourceLine(mapping.Tab)
	return mapping
}

// FromFinalRange maps the half-open final interval [start, stop) back to
// the original text it came from.
func (m *Mapper) FromFinalRange(start, stop int) Mapping {
	mapping := Mapping{
		Direction: ToTab,
		Final:     m.finalPoint(start),
	}

	if start < 0 || stop > len(m.snap.Final) {
		return mapping
	}

	interval, ok := m.snap.MapFinalInterval(start, stop)
	if !ok {
		return mapping
	}

	mapping.Mapped = true
	mapping.Tab = m.tabPoint(tabs.Position{Tab: interval.Tab, Offset: interval.StartTabOffset})
	mapping.SourceLine = m.sourceLine(mapping.Tab)
	mapping.Span = &Span{
		Start: interval.StartTabOffset,
		Stop:  interval.StopTabOffset,
		Text:  m.snap.Text(interval),
	}
	return mapping
}

// FromTab maps a tab position forward to the final text.
func (m *Mapper) FromTab(pos tabs.Position) Mapping {
	mapping := Mapping{
		Direction: ToFinal,
		Tab:       TabPoint{Tab: pos.Tab, Offset: pos.Offset, Line: tabs.NoMapping, Column: tabs.NoMapping},
	}

	if m.snap.Index.InRange(pos) {
		mapping.Tab = m.tabPoint(pos)
		mapping.SourceLine = m.sourceLine(mapping.Tab)
	}

	final, ok := m.snap.TabToFinal(pos)
	if !ok {
		return mapping
	}

	mapping.Mapped = true
	mapping.Final = m.finalPoint(final)
	return mapping
}

// FromTabLine maps the start of a 0-based line of a tab forward.
func (m *Mapper) FromTabLine(tab, line int) (Mapping, error) {
	if tab < 0 || tab >= len(m.snap.Tabs) {
		return Mapping{}, fmt.Errorf("%w: %d (document has %d)", ErrNoSuchTab, tab, len(m.snap.Tabs))
	}

	offset, ok := m.snap.TabLineToOffset(tab, line)
	if !ok {
		return Mapping{}, fmt.Errorf("%w: tab %s has no line %d", ErrNoSuchLine, m.snap.Tabs[tab].Name, line+1)
	}

	return m.FromTab(tabs.Position{Tab: tab, Offset: offset}), nil
}

func (m *Mapper) tabPoint(pos tabs.Position) TabPoint {
	return TabPoint{
		Tab:    pos.Tab,
		Name:   m.snap.Tabs[pos.Tab].Name,
		Offset: pos.Offset,
		Line:   m.snap.TabLine(pos),
		Column: m.snap.TabColumn(pos),
	}
}

func (m *Mapper) finalPoint(offset int) FinalPoint {
	if offset < 0 || offset > len(m.snap.Final) {
		return FinalPoint{Offset: offset, Line: tabs.NoMapping, Column: tabs.NoMapping}
	}
	return FinalPoint{
		Offset: offset,
		Line:   m.finalLines.Line(offset),
		Column: m.finalLines.Column(offset),
	}
}

func (m *Mapper) sourceLine(point TabPoint) string {
	text := m.snap.Tabs[point.Tab].Text
	start := min(point.Offset-point.Column, len(text))
	if start < 0 {
		return ""
	}
	line := text[start:]
	if end := strings.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}
	return strings.TrimSuffix(line, "\r")
}

// Package document assembles multi-tab documents, runs them through a chain
// of transformation stages, and answers position queries between the tabs
// and the final transformed text.
package document

import (
	"github.com/yaklabco/srcmap/pkg/tabs"
	"github.com/yaklabco/srcmap/pkg/transform"
)

// TabSeparator is appended to every tab when the document is flattened.
const TabSeparator = "\n"

// Tab is one segment of the original document.
type Tab struct {
	Name string
	Text string
}

// StageResult records what happened to one configured pass.
type StageResult struct {
	// Name is the pass name.
	Name string

	// Skipped is true when the pass did not run.
	Skipped bool

	// Err is the producer error that stopped the chain, if any.
	Err error

	// Edits is the number of producer edits.
	Edits int

	// Output is the text the stage produced (empty when skipped).
	Output string

	// Stage is the applied stage, or nil when skipped.
	Stage *transform.Stage
}

// Interval is a half-open range in the original document, expressed both as
// tab-relative and flattened offsets.
type Interval struct {
	Tab            int
	StartTabOffset int
	StopTabOffset  int
	StartOffset    int
	StopOffset     int
}

// Snapshot is an immutable, fully preprocessed document.
// A new document revision produces a new snapshot; snapshots are never
// modified after Build returns.
type Snapshot struct {
	// Tabs are the original segments in document order.
	Tabs []Tab

	// Index locates tabs in the flattened original document.
	Index *tabs.Index

	// Original is the flattened original document.
	Original string

	// Final is the output of the last stage that ran.
	Final string

	// Chain translates between Original and Final.
	Chain *transform.Chain

	// Stages describes every configured pass, in order.
	Stages []StageResult

	// Generation orders snapshots published to a Store.
	Generation uint64

	lines []*tabs.Lines
}

// OriginalToFinal translates a flattened original offset to a final offset.
func (s *Snapshot) OriginalToFinal(flat int) int {
	return s.Chain.Forward(flat)
}

// FinalToOriginal translates a final offset to a flattened original offset.
func (s *Snapshot) FinalToOriginal(final int) int {
	return s.Chain.Backward(final)
}

// TabToFlat converts a tab position to a flattened original offset.
func (s *Snapshot) TabToFlat(pos tabs.Position) int {
	return s.Index.ToFlat(pos.Tab, pos.Offset)
}

// FlatToTab converts a flattened original offset to a tab position.
func (s *Snapshot) FlatToTab(flat int) tabs.Position {
	return s.Index.Locate(flat)
}

// TabToFinal translates a tab position to a final offset.
// Returns false when pos or the result is outside its coordinate space.
func (s *Snapshot) TabToFinal(pos tabs.Position) (int, bool) {
	if !s.Index.InRange(pos) {
		return transform.NoMapping, false
	}
	final := s.OriginalToFinal(s.TabToFlat(pos))
	if final < 0 || final > len(s.Final) {
		return transform.NoMapping, false
	}
	return final, true
}

// FinalToTab translates a final offset to a tab position.
// Returns false when the result is outside every tab.
func (s *Snapshot) FinalToTab(final int) (tabs.Position, bool) {
	if final < 0 || final > len(s.Final) {
		return tabs.Position{Tab: tabs.NoMapping, Offset: tabs.NoMapping}, false
	}
	flat := s.FinalToOriginal(final)
	if flat < 0 {
		return tabs.Position{Tab: tabs.NoMapping, Offset: tabs.NoMapping}, false
	}
	pos := s.FlatToTab(flat)
	return pos, s.Index.InRange(pos)
}

// TabLine returns the 0-based line of pos within its tab, or NoMapping.
func (s *Snapshot) TabLine(pos tabs.Position) int {
	if pos.Tab < 0 || pos.Tab >= len(s.lines) || pos.Offset < 0 {
		return tabs.NoMapping
	}
	return s.lines[pos.Tab].Line(pos.Offset)
}

// TabColumn returns the 0-based byte column of pos within its line.
func (s *Snapshot) TabColumn(pos tabs.Position) int {
	if pos.Tab < 0 || pos.Tab >= len(s.lines) || pos.Offset < 0 {
		return tabs.NoMapping
	}
	return s.lines[pos.Tab].Column(pos.Offset)
}

// TabLineToOffset returns the in-tab offset where the 0-based line starts.
func (s *Snapshot) TabLineToOffset(tab, line int) (int, bool) {
	if tab < 0 || tab >= len(s.lines) {
		return 0, false
	}
	return s.lines[tab].Offset(line)
}

// MapFinalInterval maps the half-open final interval [start, stop) to the
// original document. The end is mapped through its last byte so that a
// span ending on a replacement does not spill past it. Returns false when
// either end has no mapping.
func (s *Snapshot) MapFinalInterval(start, stop int) (Interval, bool) {
	length := stop - start
	if length < 0 || len(s.Original) == 0 {
		return Interval{}, false
	}

	startFlat := s.FinalToOriginal(start)
	stopFlat := startFlat
	if length > 0 {
		stopFlat = s.FinalToOriginal(stop - 1)
		if stopFlat >= 0 && (stopFlat > startFlat || length == 1) {
			stopFlat++
		}
	}
	if startFlat < 0 || stopFlat < 0 {
		return Interval{}, false
	}

	if startFlat >= len(s.Original) {
		startFlat = len(s.Original) - 1
		stopFlat = startFlat + 1
	}
	stopFlat = max(stopFlat, startFlat)

	tab := s.Index.ToTab(startFlat)
	return Interval{
		Tab:            tab,
		StartTabOffset: s.Index.TabOffset(tab, startFlat),
		StopTabOffset:  s.Index.TabOffset(tab, stopFlat),
		StartOffset:    startFlat,
		StopOffset:     stopFlat,
	}, true
}

// Text returns the original text covered by in.
func (s *Snapshot) Text(in Interval) string {
	start := min(max(in.StartOffset, 0), len(s.Original))
	stop := min(max(in.StopOffset, start), len(s.Original))
	return s.Original[start:stop]
}

// Stage returns the result of the named pass.
func (s *Snapshot) Stage(name string) (StageResult, bool) {
	for _, result := range s.Stages {
		if result.Name == name {
			return result, true
		}
	}
	return StageResult{}, false
}

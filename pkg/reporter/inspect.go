package reporter

import (
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/langdetect"
	"github.com/yaklabco/srcmap/pkg/tabs"
)

// Stage statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// TabInfo describes one tab of an inspected document.
type TabInfo struct {
	Index    int
	Name     string
	Start    int
	Length   int
	Lines    int
	Language string

	// FinalStart is where the tab's first byte lands in the final text,
	// or tabs.NoMapping.
	FinalStart int
}

// StageInfo describes one configured stage of an inspected document.
type StageInfo struct {
	Name        string
	Status      string
	Edits       int
	OutputBytes int
	Error       string
}

// Inspection is a structural summary of a snapshot.
type Inspection struct {
	Snapshot      *document.Snapshot
	Tabs          []TabInfo
	Stages        []StageInfo
	OriginalBytes int
	FinalBytes    int
}

// Inspect summarizes snap.
func Inspect(snap *document.Snapshot) *Inspection {
	inspection := &Inspection{
		Snapshot:      snap,
		Tabs:          make([]TabInfo, 0, len(snap.Tabs)),
		Stages:        make([]StageInfo, 0, len(snap.Stages)),
		OriginalBytes: len(snap.Original),
		FinalBytes:    len(snap.Final),
	}

	for i, tab := range snap.Tabs {
		finalStart, ok := snap.TabToFinal(tabs.Position{Tab: i, Offset: 0})
		if !ok {
			finalStart = tabs.NoMapping
		}
		inspection.Tabs = append(inspection.Tabs, TabInfo{
			Index:      i,
			Name:       tab.Name,
			Start:      snap.Index.Start(i),
			Length:     snap.Index.Length(i),
			Lines:      tabs.BuildLines(tab.Text).Count(),
			Language:   langdetect.DetectFile(tab.Name, []byte(tab.Text)),
			FinalStart: finalStart,
		})
	}

	for _, result := range snap.Stages {
		info := StageInfo{
			Name:        result.Name,
			Status:      StatusOK,
			Edits:       result.Edits,
			OutputBytes: len(result.Output),
		}
		switch {
		case result.Err != nil:
			info.Status = StatusFailed
			info.Error = result.Err.Error()
		case result.Skipped:
			info.Status = StatusSkipped
		}
		inspection.Stages = append(inspection.Stages, info)
	}

	return inspection
}

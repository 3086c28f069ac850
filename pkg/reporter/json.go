package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// jsonVersion is the schema version of the JSON output.
const jsonVersion = "1.0.0"

// JSONMappings is the top-level JSON structure for position queries.
type JSONMappings struct {
	Version  string        `json:"version"`
	Mappings []JSONMapping `json:"mappings"`
}

// JSONMapping represents one answered query.
type JSONMapping struct {
	Direction string          `json:"direction"`
	Mapped    bool            `json:"mapped"`
	Tab       *JSONTabPoint   `json:"tab,omitempty"`
	Final     *JSONFinalPoint `json:"final,omitempty"`
	Span      *JSONSpan       `json:"span,omitempty"`
}

// JSONTabPoint is a tab position. Line and column are 1-based.
type JSONTabPoint struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Offset int    `json:"offset"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// JSONFinalPoint is a final-text position. Line and column are 1-based.
type JSONFinalPoint struct {
	Offset int `json:"offset"`
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`
}

// JSONSpan is the original text an interval covers.
type JSONSpan struct {
	Start int    `json:"start"`
	Stop  int    `json:"stop"`
	Text  string `json:"text"`
}

// JSONInspection is the top-level JSON structure for inspect.
type JSONInspection struct {
	Version       string      `json:"version"`
	OriginalBytes int         `json:"originalBytes"`
	FinalBytes    int         `json:"finalBytes"`
	Tabs          []JSONTab   `json:"tabs"`
	Stages        []JSONStage `json:"stages"`
}

// JSONTab describes one tab. Field order matches TabInfo.
type JSONTab struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Start      int    `json:"start"`
	Length     int    `json:"length"`
	Lines      int    `json:"lines"`
	Language   string `json:"language"`
	FinalStart int    `json:"finalStart"`
}

// JSONStage describes one stage.
type JSONStage struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Edits       int    `json:"edits"`
	OutputBytes int    `json:"outputBytes"`
	Error       string `json:"error,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportMappings implements Reporter.
func (r *JSONReporter) ReportMappings(_ context.Context, mappings []Mapping) error {
	output := JSONMappings{
		Version:  jsonVersion,
		Mappings: make([]JSONMapping, 0, len(mappings)),
	}
	for _, mapping := range mappings {
		output.Mappings = append(output.Mappings, toJSONMapping(mapping))
	}
	return r.encode(output)
}

// ReportInspection implements Reporter.
func (r *JSONReporter) ReportInspection(_ context.Context, inspection *Inspection) error {
	output := JSONInspection{
		Version:       jsonVersion,
		OriginalBytes: inspection.OriginalBytes,
		FinalBytes:    inspection.FinalBytes,
		Tabs:          make([]JSONTab, 0, len(inspection.Tabs)),
		Stages:        make([]JSONStage, 0, len(inspection.Stages)),
	}
	for _, tab := range inspection.Tabs {
		output.Tabs = append(output.Tabs, JSONTab(tab))
	}
	for _, stage := range inspection.Stages {
		output.Stages = append(output.Stages, JSONStage(stage))
	}
	return r.encode(output)
}

func (r *JSONReporter) encode(value any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func toJSONMapping(mapping Mapping) JSONMapping {
	out := JSONMapping{
		Direction: string(mapping.Direction),
		Mapped:    mapping.Mapped,
	}

	// The queried side is always reported; the other only when mapped.
	if mapping.Mapped || mapping.Direction == ToFinal {
		out.Tab = &JSONTabPoint{
			Index:  mapping.Tab.Tab,
			Name:   mapping.Tab.Name,
			Offset: mapping.Tab.Offset,
			Line:   mapping.Tab.Line + 1,
			Column: mapping.Tab.Column + 1,
		}
	}
	if mapping.Mapped || mapping.Direction == ToTab {
		out.Final = &JSONFinalPoint{
			Offset: mapping.Final.Offset,
			Line:   mapping.Final.Line + 1,
			Column: mapping.Final.Column + 1,
		}
	}
	if mapping.Span != nil {
		out.Span = &JSONSpan{
			Start: mapping.Span.Start,
			Stop:  mapping.Span.Stop,
			Text:  mapping.Span.Text,
		}
	}

	return out
}

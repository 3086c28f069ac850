// Package reporter renders position mappings and document inspections.
package reporter

import (
	"context"
	"fmt"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// Reporter formats and writes query results.
type Reporter interface {
	// ReportMappings writes the answers to position queries.
	ReportMappings(ctx context.Context, mappings []Mapping) error

	// ReportInspection writes a document's tabs and stages.
	ReportInspection(ctx context.Context, inspection *Inspection) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/pkg/tabs"
	"github.com/yaklabco/srcmap/pkg/transform"
)

// MaxStages is the maximum number of passes in one document chain.
const MaxStages = 2

// ErrTooManyStages is returned by Build when more than MaxStages passes are given.
var ErrTooManyStages = errors.New("too many stages")

// Pass produces the edits of one transformation stage.
type Pass interface {
	// Name identifies the pass in logs and results.
	Name() string

	// Edits returns the edits to apply to input. An error stops the chain:
	// this pass and every later one are skipped.
	Edits(ctx context.Context, input string) ([]transform.Edit, error)
}

// Flatten concatenates tabs, each followed by TabSeparator, and returns the
// text with the per-tab lengths.
func Flatten(docTabs []Tab) (string, []int) {
	var buf strings.Builder
	lengths := make([]int, len(docTabs))
	for i, tab := range docTabs {
		buf.WriteString(tab.Text)
		buf.WriteString(TabSeparator)
		lengths[i] = len(tab.Text) + len(TabSeparator)
	}
	return buf.String(), lengths
}

// Build flattens docTabs and runs the passes in order, each on the previous
// stage's output.
//
// A pass whose producer fails is recorded with its error, and it and all
// later passes are skipped; the returned snapshot is still usable and maps
// through the stages that ran. Build returns an error only for invalid
// arguments or context cancellation.
func Build(ctx context.Context, docTabs []Tab, passes ...Pass) (*Snapshot, error) {
	if len(passes) > MaxStages {
		return nil, fmt.Errorf("%w: %d passes given, at most %d allowed", ErrTooManyStages, len(passes), MaxStages)
	}

	logger := logging.FromContext(ctx)

	original, lengths := Flatten(docTabs)
	index, err := tabs.NewIndex(lengths)
	if err != nil {
		return nil, fmt.Errorf("build tab index: %w", err)
	}

	snapshot := &Snapshot{
		Tabs:     append([]Tab(nil), docTabs...),
		Index:    index,
		Original: original,
		Final:    original,
		Stages:   make([]StageResult, 0, len(passes)),
		lines:    make([]*tabs.Lines, len(docTabs)),
	}
	for i, tab := range docTabs {
		snapshot.lines[i] = tabs.BuildLines(tab.Text + TabSeparator)
	}

	logger.Debug("document flattened",
		logging.FieldTabs, len(docTabs),
		logging.FieldLength, len(original),
	)

	var applied []*transform.Stage
	var failure error

	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled: %w", err)
		}

		result := StageResult{Name: pass.Name()}

		if failure != nil {
			result.Skipped = true
			snapshot.Stages = append(snapshot.Stages, result)
			logger.Debug("stage skipped", logging.FieldStage, pass.Name())
			continue
		}

		edits, err := pass.Edits(logging.WithStage(ctx, pass.Name()), snapshot.Final)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("build cancelled: %w", ctxErr)
			}
			failure = fmt.Errorf("stage %s: %w", pass.Name(), err)
			result.Skipped = true
			result.Err = failure
			snapshot.Stages = append(snapshot.Stages, result)
			logger.Warn("stage failed; skipping remaining stages",
				logging.FieldStage, pass.Name(),
				logging.FieldError, err,
			)
			continue
		}

		stage := transform.NewStage(pass.Name())
		stage.Add(edits...)
		output := stage.Apply(snapshot.Final)

		logger.Debug("stage applied",
			logging.FieldStage, pass.Name(),
			logging.FieldEdits, len(edits),
			logging.FieldInputSize, len(snapshot.Final),
			logging.FieldOutputSize, len(output),
		)

		result.Edits = len(edits)
		result.Output = output
		result.Stage = stage
		snapshot.Stages = append(snapshot.Stages, result)
		snapshot.Final = output
		applied = append(applied, stage)
	}

	snapshot.Chain = transform.NewChain(applied...)

	return snapshot, nil
}

// Err returns the producer error that stopped the chain, if any.
func (s *Snapshot) Err() error {
	for _, result := range s.Stages {
		if result.Err != nil {
			return result.Err
		}
	}
	return nil
}

package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// ErrNotApplied is the state error raised when a stage is queried before
// Apply has run at least once.
var ErrNotApplied = errors.New("stage queried before apply")

// StateError is the panic value of offset queries on an unapplied stage.
type StateError struct {
	Stage string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("stage %q: %s", e.Stage, ErrNotApplied)
}

// Unwrap returns ErrNotApplied.
func (e *StateError) Unwrap() error {
	return ErrNotApplied
}

// stageIndex is the immutable result of one Apply run.
type stageIndex struct {
	output   string
	byInput  []Edit
	byOutput []Edit
}

// Stage is one text-to-text transformation pass.
//
// Producers add edits, then Apply computes the output text together with two
// indices (ordered by input offset and by output offset) that partition the
// input and output coordinate spaces. Queries read the index published by the
// most recent Apply; a new index is swapped in atomically, so readers never
// observe a partially applied stage.
//
// Add and Apply must not be called concurrently with each other.
type Stage struct {
	name  string
	edits []Edit
	index atomic.Pointer[stageIndex]
}

// NewStage creates an empty, unapplied stage.
func NewStage(name string) *Stage {
	return &Stage{name: name}
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return s.name
}

// Add appends producer edits. Order is irrelevant.
func (s *Stage) Add(edits ...Edit) {
	s.edits = append(s.edits, edits...)
}

// Edits returns a copy of the producer edits.
func (s *Stage) Edits() []Edit {
	out := make([]Edit, len(s.edits))
	copy(out, s.edits)
	return out
}

// Applied reports whether Apply has run at least once.
func (s *Stage) Applied() bool {
	return s.index.Load() != nil
}

// Apply transforms input with the stage's edits and publishes fresh indices.
// It may be called again after more edits are added.
//
// Edits are not validated. Overlapping or out-of-range edits produce an
// unspecified output, but every slice is clamped to the input and the scan
// always terminates.
func (s *Stage) Apply(input string) string {
	idx := build(input, s.edits)
	s.index.Store(idx)
	return idx.output
}

// Output returns the text produced by the last Apply.
func (s *Stage) Output() string {
	return s.mustIndex().output
}

// InputIndex returns a copy of the index ordered by input offset.
func (s *Stage) InputIndex() []Edit {
	idx := s.mustIndex()
	out := make([]Edit, len(idx.byInput))
	copy(out, idx.byInput)
	return out
}

// OutputIndex returns a copy of the index ordered by output offset.
func (s *Stage) OutputIndex() []Edit {
	idx := s.mustIndex()
	out := make([]Edit, len(idx.byOutput))
	copy(out, idx.byOutput)
	return out
}

// InputOffset translates an output offset to an input offset.
//
// Offsets inside a span with no exact counterpart map to the last byte of
// the corresponding input span, or to its start when that span is empty.
// Returns NoMapping for negative offsets or an empty index.
func (s *Stage) InputOffset(outputOffset int) int {
	idx := s.mustIndex()
	e, ok := lookup(idx.byOutput, outputOffset,
		func(e Edit) int { return e.ToOffset },
		func(e Edit) int { return e.ToLength })
	if !ok {
		return NoMapping
	}
	return e.FromOffset + min(outputOffset-e.ToOffset, max(0, e.FromLength-1))
}

// OutputOffset translates an input offset to an output offset, clamping the
// same way as InputOffset.
func (s *Stage) OutputOffset(inputOffset int) int {
	idx := s.mustIndex()
	e, ok := lookup(idx.byInput, inputOffset,
		func(e Edit) int { return e.FromOffset },
		func(e Edit) int { return e.FromLength })
	if !ok {
		return NoMapping
	}
	return e.ToOffset + min(inputOffset-e.FromOffset, max(0, e.ToLength-1))
}

func (s *Stage) mustIndex() *stageIndex {
	idx := s.index.Load()
	if idx == nil {
		panic(&StateError{Stage: s.name})
	}
	return idx
}

// lookup returns the covering entry for pos: the entry with the greatest
// start <= pos. When several entries share that start, pos == start picks the
// first one recorded, so an insertion or deletion anchor wins over the span
// that follows it; otherwise the first entry whose span contains pos wins.
func lookup(index []Edit, pos int, start, length func(Edit) int) (Edit, bool) {
	if pos < 0 || len(index) == 0 {
		return Edit{}, false
	}

	last := sort.Search(len(index), func(i int) bool {
		return start(index[i]) > pos
	}) - 1
	if last < 0 {
		return Edit{}, false
	}

	key := start(index[last])
	first := sort.Search(last+1, func(i int) bool {
		return start(index[i]) >= key
	})
	if pos == key {
		return index[first], true
	}
	for i := first; i <= last; i++ {
		if pos < key+length(index[i]) {
			return index[i], true
		}
	}
	return index[last], true
}

// build performs the single left-to-right scan over input.
//
// Two queues walk the same edits: the input queue retires an edit once the
// cursor reaches its FromOffset and skips the input it consumes; the output
// queue retires it once the cursor reaches its placeholder ToOffset, fixes
// its real output offset and emits its text. Unmodified runs between edits
// become copy entries in both indices.
func build(input string, edits []Edit) *stageIndex {
	inLen := len(input)

	// entries holds working copies of the producer edits followed by the
	// synthesized copy spans; the indices refer to it by position.
	entries := make([]Edit, len(edits), len(edits)*2+1)
	copy(entries, edits)

	inOrder := make([]int, len(edits))
	outOrder := make([]int, len(edits))
	for i := range edits {
		inOrder[i] = i
		outOrder[i] = i
	}
	sort.SliceStable(inOrder, func(a, b int) bool {
		return entries[inOrder[a]].FromOffset < entries[inOrder[b]].FromOffset
	})
	sort.SliceStable(outOrder, func(a, b int) bool {
		return entries[outOrder[a]].ToOffset < entries[outOrder[b]].ToOffset
	})

	clamp := func(pos int) int {
		return min(max(pos, 0), inLen)
	}

	var out strings.Builder
	out.Grow(inLen)

	byInput := make([]int, 0, cap(entries))
	byOutput := make([]int, 0, cap(entries))

	offset := 0
	nextIn, nextOut := 0, 0
	for offset < inLen || nextIn < len(inOrder) || nextOut < len(outOrder) {
		next := inLen
		if nextIn < len(inOrder) {
			next = min(next, clamp(entries[inOrder[nextIn]].FromOffset))
		}
		if nextOut < len(outOrder) {
			next = min(next, clamp(entries[outOrder[nextOut]].ToOffset))
		}

		if next > offset {
			entries = append(entries, copySpan(offset, next-offset, out.Len()))
			id := len(entries) - 1
			byInput = append(byInput, id)
			byOutput = append(byOutput, id)
			out.WriteString(input[offset:next])
			offset = next
		}

		for nextIn < len(inOrder) && clamp(entries[inOrder[nextIn]].FromOffset) <= offset {
			id := inOrder[nextIn]
			offset += max(entries[id].FromLength, 0)
			byInput = append(byInput, id)
			nextIn++
		}

		for nextOut < len(outOrder) && clamp(entries[outOrder[nextOut]].ToOffset) <= offset {
			id := outOrder[nextOut]
			entry := &entries[id]
			entry.ToOffset = out.Len()
			if entry.Verbatim {
				from := clamp(entry.FromOffset)
				to := min(max(entry.FromOffset+entry.FromLength, from), inLen)
				out.WriteString(input[from:to])
			} else {
				out.WriteString(entry.Text)
			}
			entry.ToLength = out.Len() - entry.ToOffset
			byOutput = append(byOutput, id)
			nextOut++
		}
	}

	idx := &stageIndex{
		output:   out.String(),
		byInput:  make([]Edit, len(byInput)),
		byOutput: make([]Edit, len(byOutput)),
	}
	for i, id := range byInput {
		idx.byInput[i] = entries[id]
	}
	for i, id := range byOutput {
		idx.byOutput[i] = entries[id]
	}

	// Overlapping producer edits can be retired behind the cursor.
	sort.SliceStable(idx.byInput, func(a, b int) bool {
		return idx.byInput[a].FromOffset < idx.byInput[b].FromOffset
	})

	return idx
}

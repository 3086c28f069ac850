package transform

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose ranges do not fit the input.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.FromOffset, e.Edit.InputEnd(), e.Message)
}

// ConflictError describes two edits consuming overlapping input.
type ConflictError struct {
	Edit1 Edit
	Edit2 Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.FromOffset, e.Edit1.InputEnd(),
		e.Edit2.FromOffset, e.Edit2.InputEnd())
}

// ValidateEdits checks that all edits have valid ranges for the given input length.
// Returns nil if all edits are valid, or the first validation error encountered.
func ValidateEdits(edits []Edit, inputLen int) error {
	for _, edit := range edits {
		if edit.FromOffset < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.FromLength < 0 || edit.ToLength < 0 {
			return &ValidationError{Edit: edit, Message: "length is negative"}
		}
		if edit.InputEnd() > inputLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds input length %d", edit.InputEnd(), inputLen),
			}
		}
		if edit.ToOffset < 0 || edit.ToOffset > inputLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("placement %d is outside the input", edit.ToOffset),
			}
		}
		if !edit.Verbatim && len(edit.Text) != edit.ToLength {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("text length %d does not match output length %d", len(edit.Text), edit.ToLength),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by input offset, then by input end.
func SortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].FromOffset != edits[j].FromOffset {
			return edits[i].FromOffset < edits[j].FromOffset
		}
		return edits[i].InputEnd() < edits[j].InputEnd()
	})
}

// DetectConflicts checks for edits consuming overlapping input in a sorted slice.
// Insertions consume nothing and never conflict.
// Edits must be sorted by SortEdits before calling.
func DetectConflicts(edits []Edit) error {
	var prev *Edit
	for i := range edits {
		curr := &edits[i]
		if curr.FromLength == 0 {
			continue
		}
		if prev != nil && curr.FromOffset < prev.InputEnd() {
			return &ConflictError{Edit1: *prev, Edit2: *curr}
		}
		prev = curr
	}
	return nil
}

// Validate checks the stage's producer edits against an input length.
// Apply never calls it; producers that want a contract opt in.
func (s *Stage) Validate(inputLen int) error {
	if err := ValidateEdits(s.edits, inputLen); err != nil {
		return err
	}

	sorted := s.Edits()
	SortEdits(sorted)

	return DetectConflicts(sorted)
}

// Package transform provides declarative text edits, mapping stages that
// apply them, and chains of stages for translating offsets between the
// input and output of each transformation.
package transform

import "fmt"

// NoMapping is returned by offset queries when a position has no
// counterpart in the target coordinate space.
const NoMapping = -1

// Edit describes the transformation of a single span.
//
// An edit consumes FromLength bytes of input starting at FromOffset and
// produces ToLength bytes of output. Verbatim edits copy the consumed input
// unchanged; all other edits emit Text, whose length is ToLength.
type Edit struct {
	// FromOffset is the byte index in the input where the edit begins.
	FromOffset int

	// FromLength is the number of input bytes consumed.
	FromLength int

	// ToOffset is the byte index in the output where the edit's text is
	// placed. For producer edits it is a placeholder in input coordinates
	// marking when the text is emitted; Stage.Apply computes the real value.
	ToOffset int

	// ToLength is the number of output bytes produced.
	ToLength int

	// Text is the replacement text. Ignored for verbatim edits.
	Text string

	// Verbatim reports whether the edit copies input[FromOffset:FromOffset+FromLength].
	Verbatim bool
}

// Insert returns an edit that inserts text at offset without consuming input.
func Insert(offset int, text string) Edit {
	return Edit{
		FromOffset: offset,
		ToOffset:   offset,
		ToLength:   len(text),
		Text:       text,
	}
}

// Replace returns an edit that replaces length bytes at offset with text.
func Replace(offset, length int, text string) Edit {
	return Edit{
		FromOffset: offset,
		FromLength: length,
		ToOffset:   offset,
		ToLength:   len(text),
		Text:       text,
	}
}

// Delete returns an edit that removes length bytes at offset.
func Delete(offset, length int) Edit {
	return Edit{
		FromOffset: offset,
		FromLength: length,
		ToOffset:   offset,
	}
}

// Move returns an edit that removes length bytes at fromOffset and emits
// them unchanged once the scan over the input reaches toOffset.
func Move(fromOffset, length, toOffset int) Edit {
	return Edit{
		FromOffset: fromOffset,
		FromLength: length,
		ToOffset:   toOffset,
		ToLength:   length,
		Verbatim:   true,
	}
}

// copySpan describes an unmodified run of input already placed in the output.
func copySpan(fromOffset, length, toOffset int) Edit {
	return Edit{
		FromOffset: fromOffset,
		FromLength: length,
		ToOffset:   toOffset,
		ToLength:   length,
		Verbatim:   true,
	}
}

// InputEnd returns the exclusive end of the consumed input span.
func (e Edit) InputEnd() int {
	return e.FromOffset + e.FromLength
}

// OutputEnd returns the exclusive end of the produced output span.
func (e Edit) OutputEnd() int {
	return e.ToOffset + e.ToLength
}

// IsInsertion reports whether the edit consumes no input.
func (e Edit) IsInsertion() bool {
	return e.FromLength == 0 && e.ToLength > 0
}

// IsDeletion reports whether the edit produces no output.
func (e Edit) IsDeletion() bool {
	return e.ToLength == 0 && e.FromLength > 0
}

func (e Edit) String() string {
	if e.Verbatim {
		return fmt.Sprintf("Edit{from=%d:%d, to=%d:%d}", e.FromOffset, e.FromLength, e.ToOffset, e.ToLength)
	}
	return fmt.Sprintf("Edit{from=%d:%d, to=%d:%d, text=%q}",
		e.FromOffset, e.FromLength, e.ToOffset, e.ToLength, e.Text)
}

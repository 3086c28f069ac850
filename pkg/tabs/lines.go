package tabs

import (
	"sort"
	"strings"
)

// OffsetToLine returns the 0-based line of offset in text, counting lines
// from start. It scans backwards for newlines, one per line.
func OffsetToLine(text string, start, offset int) int {
	offset = min(offset, len(text))
	line := 0
	for offset > start {
		nl := strings.LastIndexByte(text[start:offset], '\n')
		if nl < 0 {
			break
		}
		offset = start + nl
		line++
	}
	return line
}

// LineToOffset returns the offset where the 0-based line begins in text.
// Lines past the end resolve to the start of the last line.
func LineToOffset(text string, line int) int {
	offset := 0
	for range max(line, 0) {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			break
		}
		offset += nl + 1
	}
	return offset
}

// LineInfo describes one line of a text.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line terminator (\n or \r\n), or the
	// end of the text for the last line.
	NewlineStart int

	// EndOffset is the offset just past the line terminator.
	EndOffset int
}

// Lines is a precomputed line table answering the same questions as
// OffsetToLine and LineToOffset in logarithmic time.
type Lines struct {
	lines []LineInfo
	size  int
}

// BuildLines constructs the line table of text.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(text string) *Lines {
	table := &Lines{size: len(text)}
	lineStart := 0

	for idx := range len(text) {
		if text[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		table.lines = append(table.lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line, possibly empty.
	table.lines = append(table.lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})

	return table
}

// Count returns the number of lines. A text ending in a newline has an empty
// last line.
func (l *Lines) Count() int {
	return len(l.lines)
}

// Info returns the line metadata for a 0-based line.
func (l *Lines) Info(line int) (LineInfo, bool) {
	if line < 0 || line >= len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line], true
}

// Line returns the 0-based line containing offset. Offsets past the end
// belong to the last line; negative offsets return NoMapping.
func (l *Lines) Line(offset int) int {
	if offset < 0 {
		return NoMapping
	}
	line := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	return min(line, len(l.lines)-1)
}

// Column returns the 0-based byte column of offset within its line.
func (l *Lines) Column(offset int) int {
	line := l.Line(offset)
	if line == NoMapping {
		return NoMapping
	}
	return offset - l.lines[line].StartOffset
}

// Offset returns the offset where the 0-based line begins.
func (l *Lines) Offset(line int) (int, bool) {
	info, ok := l.Info(line)
	if !ok {
		return 0, false
	}
	return info.StartOffset, true
}

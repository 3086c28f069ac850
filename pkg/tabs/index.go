// Package tabs converts between tab-relative coordinates and offsets in the
// flattened document formed by concatenating every tab.
package tabs

import (
	"fmt"
	"sort"
)

// NoMapping marks a position with no counterpart in the target space.
const NoMapping = -1

// Position is an offset within one tab.
type Position struct {
	Tab    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Tab, p.Offset)
}

// Index holds the start offset of every tab in the flattened document.
type Index struct {
	starts  []int
	lengths []int
	total   int
}

// NewIndex builds an index from per-tab lengths, in document order.
func NewIndex(lengths []int) (*Index, error) {
	idx := &Index{
		starts:  make([]int, len(lengths)),
		lengths: make([]int, len(lengths)),
	}

	for i, length := range lengths {
		if length < 0 {
			return nil, fmt.Errorf("tab %d: negative length %d", i, length)
		}
		idx.starts[i] = idx.total
		idx.lengths[i] = length
		idx.total += length
	}

	return idx, nil
}

// Count returns the number of tabs.
func (x *Index) Count() int {
	return len(x.starts)
}

// Total returns the length of the flattened document.
func (x *Index) Total() int {
	return x.total
}

// Start returns the flattened offset where tab begins, or NoMapping.
func (x *Index) Start(tab int) int {
	if tab < 0 || tab >= len(x.starts) {
		return NoMapping
	}
	return x.starts[tab]
}

// Length returns the length of tab, or 0 for an unknown tab.
func (x *Index) Length(tab int) int {
	if tab < 0 || tab >= len(x.lengths) {
		return 0
	}
	return x.lengths[tab]
}

// Starts returns a copy of the tab start offsets.
func (x *Index) Starts() []int {
	out := make([]int, len(x.starts))
	copy(out, x.starts)
	return out
}

// ToFlat converts an in-tab offset to a flattened offset.
// Returns NoMapping when tab is out of range. The offset itself is not
// checked; use InRange for that.
func (x *Index) ToFlat(tab, offset int) int {
	start := x.Start(tab)
	if start == NoMapping {
		return NoMapping
	}
	return start + offset
}

// ToTab returns the tab containing the flattened offset: the tab with the
// greatest start not after flat, clamped to [0, Count()-1].
// Returns NoMapping only when the index has no tabs.
func (x *Index) ToTab(flat int) int {
	if len(x.starts) == 0 {
		return NoMapping
	}
	tab := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > flat
	}) - 1
	return min(max(tab, 0), len(x.starts)-1)
}

// TabOffset converts a flattened offset to an offset relative to tab.
func (x *Index) TabOffset(tab, flat int) int {
	start := x.Start(tab)
	if start == NoMapping {
		return NoMapping
	}
	return flat - start
}

// Locate converts a flattened offset to a tab position.
func (x *Index) Locate(flat int) Position {
	tab := x.ToTab(flat)
	return Position{Tab: tab, Offset: x.TabOffset(tab, flat)}
}

// InRange reports whether pos names an existing tab and an offset inside it.
func (x *Index) InRange(pos Position) bool {
	if pos.Tab < 0 || pos.Tab >= len(x.starts) {
		return false
	}
	return pos.Offset >= 0 && pos.Offset < x.lengths[pos.Tab]
}

package document_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/tabs"
	"github.com/yaklabco/srcmap/pkg/transform"
)

func TestSnapshotTabBoundaries(t *testing.T) {
	t.Parallel()

	// Tab lengths include the separator: 9+1, 14+1, 7+1.
	snap, err := document.Build(context.Background(), []document.Tab{
		{Name: "a", Text: "123456789"},
		{Name: "b", Text: "abcdefghijklmn"},
		{Name: "c", Text: "opqrstu"},
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 10, 25}, snap.Index.Starts())
	assert.Equal(t, tabs.Position{Tab: 1, Offset: 14}, snap.FlatToTab(24))
	assert.Equal(t, tabs.Position{Tab: 2, Offset: 0}, snap.FlatToTab(25))
	assert.Equal(t, 28, snap.TabToFlat(tabs.Position{Tab: 2, Offset: 3}))
}

func TestSnapshotLines(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(), []document.Tab{
		{Name: "a", Text: "x"},
		{Name: "b", Text: "a\nbb\nccc"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TabLine(tabs.Position{Tab: 1, Offset: 5}))
	assert.Equal(t, 1, snap.TabColumn(tabs.Position{Tab: 1, Offset: 6}))
	assert.Equal(t, 0, snap.TabLine(tabs.Position{Tab: 0, Offset: 1}))
	assert.Equal(t, tabs.NoMapping, snap.TabLine(tabs.Position{Tab: 2, Offset: 0}))

	offset, ok := snap.TabLineToOffset(1, 2)
	require.True(t, ok)
	assert.Equal(t, 5, offset)

	// The separator opens an empty last line.
	offset, ok = snap.TabLineToOffset(1, 3)
	require.True(t, ok)
	assert.Equal(t, 9, offset)

	_, ok = snap.TabLineToOffset(1, 4)
	assert.False(t, ok)
	_, ok = snap.TabLineToOffset(5, 0)
	assert.False(t, ok)
}

func TestSnapshotMapFinalInterval(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "a", Text: "color c;"}, {Name: "b", Text: "int y;"}},
		fixedPass{name: "syntax", edits: []transform.Edit{transform.Replace(0, 5, "int")}},
	)
	require.NoError(t, err)

	// "c" in "int c;".
	interval, ok := snap.MapFinalInterval(4, 5)
	require.True(t, ok)
	assert.Equal(t, document.Interval{
		Tab:            0,
		StartTabOffset: 6,
		StopTabOffset:  7,
		StartOffset:    6,
		StopOffset:     7,
	}, interval)
	assert.Equal(t, "c", snap.Text(interval))

	// "y" in the second tab.
	interval, ok = snap.MapFinalInterval(11, 12)
	require.True(t, ok)
	assert.Equal(t, 1, interval.Tab)
	assert.Equal(t, 4, interval.StartTabOffset)
	assert.Equal(t, "y", snap.Text(interval))

	// An empty interval stays empty.
	interval, ok = snap.MapFinalInterval(7, 7)
	require.True(t, ok)
	assert.Equal(t, interval.StartOffset, interval.StopOffset)
	assert.Empty(t, snap.Text(interval))

	_, ok = snap.MapFinalInterval(5, 4)
	assert.False(t, ok)
	_, ok = snap.MapFinalInterval(-1, 2)
	assert.False(t, ok)
}

func TestSnapshotMapFinalIntervalPastEnd(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(), []document.Tab{{Name: "a", Text: "ab"}})
	require.NoError(t, err)

	interval, ok := snap.MapFinalInterval(10, 12)
	require.True(t, ok)
	assert.Equal(t, 2, interval.StartOffset)
	assert.Equal(t, 3, interval.StopOffset)
}

func TestSnapshotTextClamps(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(), []document.Tab{{Name: "a", Text: "abc"}})
	require.NoError(t, err)

	assert.Equal(t, "abc\n", snap.Text(document.Interval{StartOffset: -3, StopOffset: 40}))
	assert.Empty(t, snap.Text(document.Interval{StartOffset: 3, StopOffset: 1}))
}

func TestSnapshotStageLookup(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(), nil, fixedPass{name: "syntax"})
	require.NoError(t, err)

	_, ok := snap.Stage("syntax")
	assert.True(t, ok)
	_, ok = snap.Stage("compile")
	assert.False(t, ok)
}

package document_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/tabs"
	"github.com/yaklabco/srcmap/pkg/transform"
)

// fixedPass returns the same edits for any input.
type fixedPass struct {
	name  string
	edits []transform.Edit
	err   error
	calls *int
}

func (p fixedPass) Name() string { return p.name }

func (p fixedPass) Edits(_ context.Context, _ string) ([]transform.Edit, error) {
	if p.calls != nil {
		*p.calls++
	}
	return p.edits, p.err
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	text, lengths := document.Flatten([]document.Tab{
		{Name: "sketch", Text: "void setup() {}"},
		{Name: "helpers", Text: ""},
		{Name: "shapes", Text: "int x;"},
	})

	assert.Equal(t, "void setup() {}\n\nint x;\n", text)
	assert.Equal(t, []int{16, 1, 7}, lengths)
}

func TestBuildWithoutPassesIsIdentity(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(), []document.Tab{
		{Name: "main", Text: "void setup() {}"},
		{Name: "util", Text: "int x = 1;"},
	})
	require.NoError(t, err)

	assert.Equal(t, snap.Original, snap.Final)
	assert.Equal(t, 0, snap.Chain.Len())

	final, ok := snap.TabToFinal(tabs.Position{Tab: 1, Offset: 3})
	require.True(t, ok)
	assert.Equal(t, 19, final)

	pos, ok := snap.FinalToTab(19)
	require.True(t, ok)
	assert.Equal(t, tabs.Position{Tab: 1, Offset: 3}, pos)
}

func TestBuildSingleStage(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "a", Text: "color c;"}, {Name: "b", Text: "int y;"}},
		fixedPass{name: "syntax", edits: []transform.Edit{transform.Replace(0, 5, "int")}},
	)
	require.NoError(t, err)
	require.NoError(t, snap.Err())

	assert.Equal(t, "color c;\nint y;\n", snap.Original)
	assert.Equal(t, "int c;\nint y;\n", snap.Final)

	result, ok := snap.Stage("syntax")
	require.True(t, ok)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Edits)
	assert.Equal(t, snap.Final, result.Output)

	// Unmodified text keeps its exact shift.
	final, ok := snap.TabToFinal(tabs.Position{Tab: 1, Offset: 0})
	require.True(t, ok)
	assert.Equal(t, 7, final)

	pos, ok := snap.FinalToTab(7)
	require.True(t, ok)
	assert.Equal(t, tabs.Position{Tab: 1, Offset: 0}, pos)

	// Inside the replacement.
	pos, ok = snap.FinalToTab(1)
	require.True(t, ok)
	assert.Equal(t, tabs.Position{Tab: 0, Offset: 1}, pos)

	// The tab separator is part of its tab.
	final, ok = snap.TabToFinal(tabs.Position{Tab: 0, Offset: 8})
	require.True(t, ok)
	assert.Equal(t, 6, final)
}

func TestBuildOutOfRangeIsNoMapping(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "a", Text: "color c;"}, {Name: "b", Text: "int y;"}},
	)
	require.NoError(t, err)

	tests := []struct {
		name string
		pos  tabs.Position
	}{
		{"tab past end", tabs.Position{Tab: 2, Offset: 0}},
		{"negative tab", tabs.Position{Tab: -1, Offset: 0}},
		{"offset past tab", tabs.Position{Tab: 0, Offset: 9}},
		{"negative offset", tabs.Position{Tab: 1, Offset: -1}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			final, ok := snap.TabToFinal(testCase.pos)
			assert.False(t, ok)
			assert.Equal(t, transform.NoMapping, final)
		})
	}

	_, ok := snap.FinalToTab(-1)
	assert.False(t, ok)
	_, ok = snap.FinalToTab(len(snap.Final) + 1)
	assert.False(t, ok)
}

func TestBuildChainComposition(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "main", Text: "hello"}},
		fixedPass{name: "first", edits: []transform.Edit{transform.Insert(0, "ab")}},
		fixedPass{name: "second", edits: []transform.Edit{transform.Replace(2, 1, "WXYZ")}},
	)
	require.NoError(t, err)

	assert.Equal(t, "abWXYZello\n", snap.Final)
	assert.Equal(t, 2, snap.Chain.Len())

	assert.Equal(t, 0, snap.OriginalToFinal(0))
	for final := 2; final < 6; final++ {
		assert.Equal(t, 0, snap.FinalToOriginal(final), "final %d", final)
	}
	assert.Equal(t, 1, snap.FinalToOriginal(6))
}

func TestBuildFailedPassSkipsRemainder(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("unbalanced braces")
	calls := 0

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "main", Text: "void draw() {"}},
		fixedPass{name: "syntax", err: errBroken},
		fixedPass{name: "compile", edits: []transform.Edit{transform.Insert(0, "x")}, calls: &calls},
	)
	require.NoError(t, err)

	require.ErrorIs(t, snap.Err(), errBroken)
	assert.Contains(t, snap.Err().Error(), "syntax")
	assert.Equal(t, 0, calls)

	require.Len(t, snap.Stages, 2)
	assert.True(t, snap.Stages[0].Skipped)
	require.ErrorIs(t, snap.Stages[0].Err, errBroken)
	assert.True(t, snap.Stages[1].Skipped)
	require.NoError(t, snap.Stages[1].Err)

	assert.Equal(t, snap.Original, snap.Final)
	assert.Equal(t, 0, snap.Chain.Len())
	assert.Equal(t, 4, snap.OriginalToFinal(4))
}

func TestBuildSecondPassFailureKeepsFirst(t *testing.T) {
	t.Parallel()

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "main", Text: "abc"}},
		fixedPass{name: "first", edits: []transform.Edit{transform.Insert(0, "__")}},
		fixedPass{name: "second", err: errors.New("boom")},
	)
	require.NoError(t, err)

	require.Error(t, snap.Err())
	assert.Equal(t, "__abc\n", snap.Final)
	assert.Equal(t, 1, snap.Chain.Len())
	assert.Equal(t, 3, snap.OriginalToFinal(1))
}

func TestBuildTooManyStages(t *testing.T) {
	t.Parallel()

	pass := fixedPass{name: "noop"}
	_, err := document.Build(context.Background(), nil, pass, pass, pass)
	require.ErrorIs(t, err, document.ErrTooManyStages)
}

func TestBuildCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := document.Build(ctx, []document.Tab{{Text: "x"}}, fixedPass{name: "noop"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildDoesNotRetainCallerTabs(t *testing.T) {
	t.Parallel()

	docTabs := []document.Tab{{Name: "main", Text: "abc"}}
	snap, err := document.Build(context.Background(), docTabs)
	require.NoError(t, err)

	docTabs[0].Text = "changed"
	assert.Equal(t, "abc", snap.Tabs[0].Text)
}

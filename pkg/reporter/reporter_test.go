package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/reporter"
	"github.com/yaklabco/srcmap/pkg/tabs"
	"github.com/yaklabco/srcmap/pkg/transform"
)

type stubPass struct {
	name  string
	edits []transform.Edit
	err   error
}

func (p stubPass) Name() string { return p.name }

func (p stubPass) Edits(context.Context, string) ([]transform.Edit, error) {
	return p.edits, p.err
}

// buildSnapshot returns a two-tab document whose only stage prepends a
// generated header line:
//
//	original: "ab\ncd\n" + "xy\n"
//	final:    "// gen\nab\ncd\nxy\n"
func buildSnapshot(t *testing.T, passes ...document.Pass) *document.Snapshot {
	t.Helper()

	if passes == nil {
		passes = []document.Pass{stubPass{name: "wrap", edits: []transform.Edit{transform.Insert(0, "// gen\n")}}}
	}

	snap, err := document.Build(context.Background(),
		[]document.Tab{{Name: "a.pde", Text: "ab\ncd"}, {Name: "b.pde", Text: "xy"}},
		passes...,
	)
	require.NoError(t, err)
	return snap
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				assert.False(t, reporter.Format(testCase.input).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	text, err := reporter.New(reporter.Options{Writer: &buf})
	require.NoError(t, err)
	assert.IsType(t, &reporter.TextReporter{}, text)

	jsonReporter, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
	require.NoError(t, err)
	assert.IsType(t, &reporter.JSONReporter{}, jsonReporter)

	_, err = reporter.New(reporter.Options{Writer: &buf, Format: "xml"})
	require.Error(t, err)
}

func TestMapperFromFinal(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	got := mapper.FromFinal(10)
	assert.Equal(t, reporter.Mapping{
		Direction:  reporter.ToTab,
		Mapped:     true,
		Final:      reporter.FinalPoint{Offset: 10, Line: 2, Column: 0},
		Tab:        reporter.TabPoint{Tab: 0, Name: "a.pde", Offset: 3, Line: 1, Column: 0},
		SourceLine: "cd",
	}, got)

	unmapped := mapper.FromFinal(99)
	assert.False(t, unmapped.Mapped)
	assert.Equal(t, reporter.FinalPoint{Offset: 99, Line: tabs.NoMapping, Column: tabs.NoMapping}, unmapped.Final)
}

func TestMapperFromTab(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	got := mapper.FromTab(tabs.Position{Tab: 1, Offset: 1})
	assert.Equal(t, reporter.Mapping{
		Direction:  reporter.ToFinal,
		Mapped:     true,
		Tab:        reporter.TabPoint{Tab: 1, Name: "b.pde", Offset: 1, Line: 0, Column: 1},
		Final:      reporter.FinalPoint{Offset: 14, Line: 3, Column: 1},
		SourceLine: "xy",
	}, got)

	outside := mapper.FromTab(tabs.Position{Tab: 5, Offset: 0})
	assert.False(t, outside.Mapped)
	assert.Empty(t, outside.Tab.Name)
	assert.Equal(t, tabs.NoMapping, outside.Tab.Line)
}

func TestMapperFromTabLine(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	got, err := mapper.FromTabLine(0, 1)
	require.NoError(t, err)
	assert.Equal(t, mapper.FromTab(tabs.Position{Tab: 0, Offset: 3}), got)

	_, err = mapper.FromTabLine(0, 5)
	require.ErrorIs(t, err, reporter.ErrNoSuchLine)
	assert.Contains(t, err.Error(), "a.pde has no line 6")

	_, err = mapper.FromTabLine(3, 0)
	require.ErrorIs(t, err, reporter.ErrNoSuchTab)
}

func TestMapperFromFinalRange(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	got := mapper.FromFinalRange(7, 9)
	require.True(t, got.Mapped)
	assert.Equal(t, &reporter.Span{Start: 0, Stop: 2, Text: "ab"}, got.Span)
	assert.Equal(t, reporter.TabPoint{Tab: 0, Name: "a.pde", Offset: 0, Line: 0, Column: 0}, got.Tab)

	assert.False(t, mapper.FromFinalRange(10, 99).Mapped)
	assert.False(t, mapper.FromFinalRange(9, 7).Mapped)
}

func TestTextReporterMappings(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowContext: true})

	err := rep.ReportMappings(context.Background(), []reporter.Mapping{
		mapper.FromFinal(10),
		mapper.FromTab(tabs.Position{Tab: 1, Offset: 1}),
		mapper.FromTab(tabs.Position{Tab: 5, Offset: 0}),
		mapper.FromFinal(99),
		mapper.FromFinalRange(7, 9),
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"  final:3:1 (offset 10)  ->  a.pde:2:1",
		"      cd",
		"      ^",
		"  b.pde:1:2  ->  final:4:2 (offset 14)",
		"      xy",
		"       ^",
		"  tab 5 offset 0  ->  no mapping",
		"  final offset 99  ->  no mapping",
		"  final:2:1 (offset 7)  ->  a.pde:1:1",
		`      covers [0, 2) "ab"`,
		"      ab",
		"      ^",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONReporterMappings(t *testing.T) {
	t.Parallel()

	mapper := reporter.NewMapper(buildSnapshot(t))

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	err := rep.ReportMappings(context.Background(), []reporter.Mapping{
		mapper.FromFinal(10),
		mapper.FromTab(tabs.Position{Tab: 5, Offset: 0}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is one line")

	var output reporter.JSONMappings
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Mappings, 2)

	first := output.Mappings[0]
	assert.Equal(t, "to-tab", first.Direction)
	assert.True(t, first.Mapped)
	assert.Equal(t, &reporter.JSONTabPoint{Index: 0, Name: "a.pde", Offset: 3, Line: 2, Column: 1}, first.Tab)
	assert.Equal(t, &reporter.JSONFinalPoint{Offset: 10, Line: 3, Column: 1}, first.Final)

	second := output.Mappings[1]
	assert.False(t, second.Mapped)
	assert.Nil(t, second.Final)
	require.NotNil(t, second.Tab)
	assert.Equal(t, 5, second.Tab.Index)
	assert.Zero(t, second.Tab.Line)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	inspection := reporter.Inspect(buildSnapshot(t))

	assert.Equal(t, 9, inspection.OriginalBytes)
	assert.Equal(t, 16, inspection.FinalBytes)
	assert.Equal(t, []reporter.TabInfo{
		{Index: 0, Name: "a.pde", Start: 0, Length: 6, Lines: 2, Language: "processing", FinalStart: 0},
		{Index: 1, Name: "b.pde", Start: 6, Length: 3, Lines: 1, Language: "processing", FinalStart: 13},
	}, inspection.Tabs)
	assert.Equal(t, []reporter.StageInfo{
		{Name: "wrap", Status: reporter.StatusOK, Edits: 1, OutputBytes: 16},
	}, inspection.Stages)
}

func TestInspectFailedStage(t *testing.T) {
	t.Parallel()

	inspection := reporter.Inspect(buildSnapshot(t,
		stubPass{name: "first", err: errors.New("boom")},
		stubPass{name: "second"},
	))

	require.Len(t, inspection.Stages, 2)
	assert.Equal(t, reporter.StatusFailed, inspection.Stages[0].Status)
	assert.Equal(t, "stage first: boom", inspection.Stages[0].Error)
	assert.Equal(t, reporter.StatusSkipped, inspection.Stages[1].Status)
	assert.Equal(t, 9, inspection.FinalBytes)
}

func TestTextReporterInspection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	require.NoError(t, rep.ReportInspection(context.Background(), reporter.Inspect(buildSnapshot(t))))

	out := buf.String()
	assert.Contains(t, out, "Tabs\n TAB   NAME")
	assert.Contains(t, out, " 1     b.pde  processing")
	assert.Contains(t, out, "Stages\n STAGE")
	assert.Contains(t, out, " wrap   ok")
	assert.Contains(t, out, "Build completed")
}

func TestJSONReporterInspection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	require.NoError(t, rep.ReportInspection(context.Background(), reporter.Inspect(buildSnapshot(t))))

	var output reporter.JSONInspection
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Tabs, 2)
	assert.Equal(t, "b.pde", output.Tabs[1].Name)
	assert.Equal(t, 13, output.Tabs[1].FinalStart)
	require.Len(t, output.Stages, 1)
	assert.Equal(t, "ok", output.Stages[0].Status)
}

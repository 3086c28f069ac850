package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/fsutil"
	"github.com/yaklabco/srcmap/pkg/source"
)

const readme = "# Sketch\n" +
	"\n" +
	"```processing\n" +
	"void setup() {\n" +
	"  size(100, 100);\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"Some prose.\n" +
	"\n" +
	"```python\n" +
	"print('skip me')\n" +
	"```\n" +
	"\n" +
	"```pde\n" +
	"void draw() {}\n" +
	"```\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "Main.pde", "void setup() {}")
	second := writeFile(t, dir, "Helpers.pde", "int twice(int x) { return 2 * x; }")

	got, err := source.LoadFiles(context.Background(), []string{first, second})
	require.NoError(t, err)

	assert.Equal(t, []document.Tab{
		{Name: "Main.pde", Text: "void setup() {}"},
		{Name: "Helpers.pde", Text: "int twice(int x) { return 2 * x; }"},
	}, got)
}

func TestLoadCollectsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "Main.pde", "x")

	_, err := source.LoadFiles(context.Background(), []string{
		filepath.Join(dir, "missing-a.pde"),
		good,
		filepath.Join(dir, "missing-b.pde"),
	})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Contains(t, err.Error(), "missing-a.pde")
	assert.Contains(t, err.Error(), "missing-b.pde")
}

func TestLoadNoTabs(t *testing.T) {
	t.Parallel()

	_, err := source.Load(context.Background(), nil, source.Options{})
	require.ErrorIs(t, err, source.ErrNoTabs)
}

func TestParseMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("all fenced blocks", func(t *testing.T) {
		t.Parallel()

		got := source.ParseMarkdown("README.md", []byte(readme), nil)
		require.Len(t, got, 3)

		assert.Equal(t, "README.md:4", got[0].Name)
		assert.Equal(t, "void setup() {\n  size(100, 100);\n}", got[0].Text)
		assert.Equal(t, "README.md:12", got[1].Name)
		assert.Equal(t, "print('skip me')", got[1].Text)
		assert.Equal(t, "README.md:16", got[2].Name)
	})

	t.Run("language filter", func(t *testing.T) {
		t.Parallel()

		got := source.ParseMarkdown("README.md", []byte(readme), []string{"processing"})
		require.Len(t, got, 2)
		assert.True(t, strings.HasPrefix(got[0].Text, "void setup()"))
		assert.Equal(t, "void draw() {}", got[1].Text)
	})

	t.Run("no fenced blocks", func(t *testing.T) {
		t.Parallel()

		got := source.ParseMarkdown("notes.md", []byte("just prose\n\n    indented code\n"), nil)
		assert.Empty(t, got)
	})
}

func TestLoadMarkdownThroughLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "README.md", readme)
	plain := writeFile(t, dir, "Extra.pde", "int x;")

	got, err := source.Load(context.Background(), []string{doc, plain}, source.Options{
		Markdown:  true,
		Languages: []string{"processing"},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Extra.pde", got[2].Name)

	// Without the markdown option the file is a single tab.
	got, err = source.Load(context.Background(), []string{doc}, source.Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, readme, got[0].Text)
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	got, err := source.LoadReader("stdin", strings.NewReader("void draw() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, []document.Tab{{Name: "stdin", Text: "void draw() {}\n"}}, got)
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	assert.True(t, source.IsMarkdown("README.md"))
	assert.True(t, source.IsMarkdown("docs/Guide.MARKDOWN"))
	assert.False(t, source.IsMarkdown("Sketch.pde"))
}

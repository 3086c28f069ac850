// Package source loads the tabs of a document from files, sketch folders,
// Markdown code blocks, or a reader.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/fsutil"
	"github.com/yaklabco/srcmap/pkg/langdetect"
	"github.com/yaklabco/srcmap/pkg/tabs"
)

// ErrNoTabs is returned when the inputs produce no tab at all.
var ErrNoTabs = errors.New("no tabs to load")

// Options controls how paths are turned into tabs.
type Options struct {
	// Markdown treats .md and .markdown files as documents whose fenced
	// code blocks are the tabs.
	Markdown bool

	// Languages filters Markdown code blocks by info string. Empty keeps
	// every fenced block.
	Languages []string

	// Jobs bounds concurrent file reads. Zero or negative uses one per CPU.
	Jobs int
}

// Load reads every path and returns the tabs in path order. Plain files
// become one tab each; sketch folders contribute their code files, main tab
// first; Markdown files contribute one tab per fenced code block when
// enabled. Files are read concurrently. Read errors are collected and
// returned together.
func Load(ctx context.Context, paths []string, opts Options) ([]document.Tab, error) {
	files, errs := expandPaths(ctx, paths)

	tabsByPath, readErrs := readAll(ctx, files, opts)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load cancelled: %w", err)
	}
	errs = append(errs, readErrs...)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var out []document.Tab
	for _, fileTabs := range tabsByPath {
		out = append(out, fileTabs...)
	}
	if len(out) == 0 {
		return nil, ErrNoTabs
	}
	return out, nil
}

// LoadFiles reads one tab per file, named after the file's base name.
func LoadFiles(ctx context.Context, paths []string) ([]document.Tab, error) {
	return Load(ctx, paths, Options{})
}

func loadFile(ctx context.Context, path string) (document.Tab, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return document.Tab{}, err
	}

	logging.FromContext(ctx).Debug("loaded tab",
		logging.FieldPath, path,
		logging.FieldLength, len(content),
	)

	return document.Tab{Name: filepath.Base(path), Text: string(content)}, nil
}

// LoadReader reads r as a single tab.
func LoadReader(name string, r io.Reader) ([]document.Tab, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return []document.Tab{{Name: name, Text: string(content)}}, nil
}

// LoadMarkdown reads a Markdown file and returns its fenced code blocks as tabs.
func LoadMarkdown(ctx context.Context, path string, languages []string) ([]document.Tab, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	blocks := ParseMarkdown(filepath.Base(path), content, languages)

	logging.FromContext(ctx).Debug("loaded markdown tabs",
		logging.FieldPath, path,
		logging.FieldTabs, len(blocks),
	)

	return blocks, nil
}

// ParseMarkdown extracts fenced code blocks from content. Each tab is named
// "<name>:<line>" after the 1-based line of the block's first content line.
// Blocks whose info string language is not in languages are skipped.
func ParseMarkdown(name string, content []byte, languages []string) []document.Tab {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var out []document.Tab
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		if len(languages) > 0 {
			lang := langdetect.Normalize(strings.ToLower(string(block.Language(content))))
			if !langdetect.Matches(lang, languages) {
				return ast.WalkSkipChildren, nil
			}
		}

		out = append(out, document.Tab{
			Name: fmt.Sprintf("%s:%d", name, blockLine(block, content)),
			Text: blockText(block, content),
		})
		return ast.WalkSkipChildren, nil
	})

	return out
}

// blockText joins the block's lines without the final newline, which the
// tab separator supplies.
func blockText(block *ast.FencedCodeBlock, content []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		buf.Write(segment.Value(content))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func blockLine(block *ast.FencedCodeBlock, content []byte) int {
	lines := block.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return tabs.OffsetToLine(string(content), 0, lines.At(0).Start) + 1
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

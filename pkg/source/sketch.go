package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SketchExtensions are the file extensions a sketch folder contributes tabs
// from.
func SketchExtensions() []string {
	return []string{".pde", ".java"}
}

// DiscoverSketch lists the code files of a sketch folder in tab order. The
// main tab, named after the folder, comes first; the rest follow sorted by
// name without extension. Hidden files and subdirectories are skipped.
func DiscoverSketch(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discovery cancelled: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sketch folder %s: %w", dir, err)
	}

	mainName := filepath.Base(filepath.Clean(dir)) + ".pde"

	var (
		mainPath string
		rest     []string
	)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !hasSketchExtension(name) {
			continue
		}

		path := filepath.Join(dir, name)
		if !isCodeFile(path, entry) {
			continue
		}

		if name == mainName {
			mainPath = path
			continue
		}
		rest = append(rest, path)
	}

	slices.SortStableFunc(rest, func(a, b string) int {
		return strings.Compare(tabStem(a), tabStem(b))
	})

	if mainPath != "" {
		rest = append([]string{mainPath}, rest...)
	}
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: %s has no code files", ErrNoTabs, dir)
	}
	return rest, nil
}

// isCodeFile rejects directories, including ones named like code files,
// and broken symlinks.
func isCodeFile(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func hasSketchExtension(name string) bool {
	return slices.Contains(SketchExtensions(), filepath.Ext(name))
}

func tabStem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// expandPaths replaces every sketch folder in paths with its code files.
// Paths that cannot be inspected are kept so reading reports them.
func expandPaths(ctx context.Context, paths []string) ([]string, []error) {
	var (
		out  []string
		errs []error
	)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			out = append(out, path)
			continue
		}

		files, err := DiscoverSketch(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, files...)
	}

	return out, errs
}

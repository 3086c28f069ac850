package source

import (
	"context"
	"runtime"
	"sync"

	"github.com/yaklabco/srcmap/pkg/document"
)

// outcome is what reading one path produced.
type outcome struct {
	index int
	tabs  []document.Tab
	err   error
}

// readAll reads paths concurrently and returns their tabs and errors
// indexed like paths. Slots of paths not read before ctx ends stay empty.
func readAll(ctx context.Context, paths []string, opts Options) ([][]document.Tab, []error) {
	tabsByPath := make([][]document.Tab, len(paths))
	errs := make([]error, len(paths))
	if len(paths) == 0 {
		return tabsByPath, errs
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(paths))

	workCh := make(chan int)
	outCh := make(chan outcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, paths, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for i := range paths {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	for result := range outCh {
		tabsByPath[result.index] = result.tabs
		errs[result.index] = result.err
	}

	return tabsByPath, errs
}

func worker(ctx context.Context, paths []string, opts Options, workCh <-chan int, outCh chan<- outcome) {
	for index := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result := outcome{index: index}
		result.tabs, result.err = readPath(ctx, paths[index], opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- result:
		}
	}
}

func readPath(ctx context.Context, path string, opts Options) ([]document.Tab, error) {
	if opts.Markdown && IsMarkdown(path) {
		return LoadMarkdown(ctx, path, opts.Languages)
	}

	tab, err := loadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return []document.Tab{tab}, nil
}

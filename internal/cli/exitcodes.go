package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/fsutil"
	"github.com/yaklabco/srcmap/pkg/source"
)

// Exit codes for srcmap.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates an error with no more specific code.
	ExitFailure = 1

	// ExitStageFailed indicates a stage stopped the build.
	ExitStageFailed = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitNoInput indicates missing or empty input.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that failed to load or validate.
	ErrConfig = errors.New("configuration error")

	// ErrNoInput is returned when there is nothing to read.
	ErrNoInput = errors.New("no input")

	// ErrStageFailed is returned when a stage stopped the build. The failure
	// has already been reported.
	ErrStageFailed = errors.New("stage failed")
)

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrStageFailed):
		return ExitStageFailed
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.Is(err, document.ErrTooManyStages):
		return ExitConfigError
	case errors.Is(err, ErrNoInput), errors.Is(err, source.ErrNoTabs), errors.Is(err, fsutil.ErrNotFound):
		return ExitNoInput
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory), errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}

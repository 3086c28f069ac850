package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/internal/cli"
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/fsutil"
	"github.com/yaklabco/srcmap/pkg/source"
)

//nolint:gochecknoglobals // Shared read-only test fixture.
var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc123",
	Date:    "2024-01-01",
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	assert.Equal(t, "srcmap", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"apply", "map", "inspect", "init", "version"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"debug", "config", "color", "strict", "stages", "lang", "jobs"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{command: "apply", flags: []string{"output", "stage"}},
		{command: "map", flags: []string{"final", "length", "tab", "offset", "line", "no-context", "format", "compact"}},
		{command: "inspect", flags: []string{"no-summary", "format", "compact"}},
		{command: "init", flags: []string{"force", "output"}},
		{command: "version", flags: []string{"short"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo)
			sub, _, err := cmd.Find([]string{testCase.command})
			require.NoError(t, err)

			for _, name := range testCase.flags {
				assert.NotNil(t, sub.Flags().Lookup(name), "flag %q", name)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestVersionShort(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"version", "--short"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "1.2.3\n", out.String())
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"map", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "srcmap map [files...]")
	assert.Contains(t, help, "--final")
	assert.Contains(t, help, "Global Flags:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "stage failed", err: fmt.Errorf("%w: boom", cli.ErrStageFailed), want: cli.ExitStageFailed},
		{name: "usage", err: fmt.Errorf("%w: bad flag", cli.ErrUsage), want: cli.ExitInvalidUsage},
		{name: "config", err: fmt.Errorf("%w: bad yaml", cli.ErrConfig), want: cli.ExitConfigError},
		{name: "too many stages", err: document.ErrTooManyStages, want: cli.ExitConfigError},
		{name: "no input", err: cli.ErrNoInput, want: cli.ExitNoInput},
		{name: "no tabs", err: source.ErrNoTabs, want: cli.ExitNoInput},
		{name: "missing file", err: fmt.Errorf("read input: %w", fsutil.ErrNotFound), want: cli.ExitNoInput},
		{name: "permission denied", err: fsutil.ErrPermissionDenied, want: cli.ExitIOError},
		{name: "path error", err: &fs.PathError{Op: "write", Path: "x", Err: fs.ErrClosed}, want: cli.ExitIOError},
		{name: "other", err: errors.New("boom"), want: cli.ExitFailure},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, cli.ExitCode(testCase.err))
		})
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"apply", "--no-such-flag"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestRootHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Environment:")
	assert.Contains(t, out.String(), "SRCMAP_STAGES")
	assert.Contains(t, out.String(), "Commands:")
}

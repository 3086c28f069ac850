// Package cli provides the Cobra command structure for srcmap.
package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcmap/internal/configloader"
	"github.com/yaklabco/srcmap/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root srcmap command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "srcmap",
		Short: "Rewrite multi-file sketches and map positions back to the source",
		Long: `srcmap runs a document made of several tabs through up to two
rewriting stages and keeps an exact position mapping between the
original tabs and the final text.

It ships with a preset that turns a Processing sketch into compilable
Java, so compiler errors reported against the generated code can be
traced back to the tab, line and column that produced them.

` + envHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().Bool("strict", false, "reject overlapping or out-of-range edits")
	rootCmd.PersistentFlags().StringSlice("stages", nil, "run only the named stages")
	rootCmd.PersistentFlags().StringSlice("lang", nil, "only read Markdown code blocks in these languages")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "files to read concurrently (0 = one per CPU)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newMapCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// envHelp lists the supported environment variables.
func envHelp() string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	var builder strings.Builder
	builder.WriteString("Environment:\n")
	for _, name := range names {
		fmt.Fprintf(&builder, "  %-*s  %s\n", width, name, vars[name])
	}
	return builder.String()
}

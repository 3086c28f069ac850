package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/reporter"
	"github.com/yaklabco/srcmap/pkg/tabs"
)

// mapFlags holds the flags for the map command.
type mapFlags struct {
	finals    []int
	length    int
	tab       string
	offsets   []int
	lines     []int
	noContext bool
}

func newMapCommand() *cobra.Command {
	flags := &mapFlags{}

	cmd := &cobra.Command{
		Use:   "map [files...]",
		Short: "Translate positions between the input tabs and the final text",
		Long: `Translate positions through the enabled stages.

--final takes byte offsets in the final text and reports the tab position
each one came from. With --length, each offset starts an interval and the
covered original text is reported as well.

--offset and --line take positions in the tab selected by --tab (an index
or a name) and report where they land in the final text. Lines are
1-based; offsets are bytes from the start of the tab.

Examples:
  srcmap map --final 120 sketch.pde
  srcmap map --final 120 --length 8 sketch.pde
  srcmap map --tab helpers.pde --line 12 sketch.pde helpers.pde
  srcmap map --tab 0 --offset 0,42 --format json sketch.pde`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, args, flags)
		},
	}

	cmd.Flags().IntSliceVar(&flags.finals, "final", nil, "Final-text offsets to map back to the tabs")
	cmd.Flags().IntVar(&flags.length, "length", 0, "Map each --final offset as an interval of this many bytes")
	cmd.Flags().StringVar(&flags.tab, "tab", "", "Tab index or name for --offset and --line")
	cmd.Flags().IntSliceVar(&flags.offsets, "offset", nil, "Tab offsets to map forward")
	cmd.Flags().IntSliceVar(&flags.lines, "line", nil, "1-based tab lines to map forward")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "Do not print source lines")
	addFormatFlags(cmd)

	return cmd
}

func runMap(cmd *cobra.Command, args []string, flags *mapFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}
	if err := checkFormatFlag(cmd); err != nil {
		return err
	}

	sess, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	if failed, ok := failedStage(sess.snap); ok {
		sess.logger.Warn("stage failed; mapping through the stages that ran",
			logging.FieldStage, failed.Name,
			logging.FieldError, failed.Err,
		)
	}

	mappings, err := flags.query(sess.snap)
	if err != nil {
		return err
	}

	rep, err := newReporter(cmd, sess.cfg, func(opts *reporter.Options) {
		opts.ShowContext = !flags.noContext
	})
	if err != nil {
		return err
	}
	return rep.ReportMappings(sess.ctx, mappings)
}

func (f *mapFlags) validate() error {
	tabQueries := len(f.offsets) + len(f.lines)

	switch {
	case len(f.finals) == 0 && tabQueries == 0:
		return usageErrorf("nothing to map; use --final, --offset or --line")
	case tabQueries > 0 && f.tab == "":
		return usageErrorf("--offset and --line need --tab")
	case f.length < 0:
		return usageErrorf("--length must not be negative")
	case f.length > 0 && len(f.finals) == 0:
		return usageErrorf("--length needs --final")
	}

	for _, line := range f.lines {
		if line < 1 {
			return usageErrorf("--line %d: lines start at 1", line)
		}
	}
	return nil
}

func (f *mapFlags) query(snap *document.Snapshot) ([]reporter.Mapping, error) {
	mapper := reporter.NewMapper(snap)
	mappings := make([]reporter.Mapping, 0, len(f.finals)+len(f.offsets)+len(f.lines))

	for _, final := range f.finals {
		if f.length > 0 {
			mappings = append(mappings, mapper.FromFinalRange(final, final+f.length))
			continue
		}
		mappings = append(mappings, mapper.FromFinal(final))
	}

	if f.tab == "" {
		return mappings, nil
	}

	tab, err := resolveTab(snap, f.tab)
	if err != nil {
		return nil, err
	}

	for _, offset := range f.offsets {
		mappings = append(mappings, mapper.FromTab(tabs.Position{Tab: tab, Offset: offset}))
	}
	for _, line := range f.lines {
		mapping, err := mapper.FromTabLine(tab, line-1)
		if err != nil {
			if errors.Is(err, reporter.ErrNoSuchLine) {
				return nil, usageError(err)
			}
			return nil, err
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

// resolveTab accepts a tab index or, failing that, a tab name. Names match
// the first tab carrying them.
func resolveTab(snap *document.Snapshot, value string) (int, error) {
	if index, err := strconv.Atoi(value); err == nil {
		if index < 0 || index >= len(snap.Tabs) {
			return 0, usageErrorf("%w: %d (document has %d)", reporter.ErrNoSuchTab, index, len(snap.Tabs))
		}
		return index, nil
	}

	for i, tab := range snap.Tabs {
		if tab.Name == value {
			return i, nil
		}
	}
	return 0, usageErrorf("%w: %q", reporter.ErrNoSuchTab, value)
}

package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/reporter"
)

// addFormatFlags registers the output flags shared by query commands.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output format: text or json (default from config)")
	cmd.Flags().Bool("compact", false, "Minify JSON output")
}

// checkFormatFlag rejects an unknown --format before any work is done.
func checkFormatFlag(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("format") {
		return nil
	}
	value, _ := cmd.Flags().GetString("format")
	if _, err := reporter.ParseFormat(value); err != nil {
		return usageError(err)
	}
	return nil
}

// newReporter builds the reporter for a command from the resolved config.
func newReporter(cmd *cobra.Command, cfg *config.Config, customize func(*reporter.Options)) (reporter.Reporter, error) {
	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.Color = string(cfg.Color)
	opts.TermWidth = terminalWidth(opts.Writer)
	opts.Compact, _ = cmd.Flags().GetBool("compact")

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, usageError(err)
	}
	opts.Format = format

	if customize != nil {
		customize(&opts)
	}
	return reporter.New(opts)
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}

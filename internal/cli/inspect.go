package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/srcmap/pkg/reporter"
)

func newInspectCommand() *cobra.Command {
	var noSummary bool

	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Describe the tabs and stages of a built document",
		Long: `Build the input and print its structure: every tab with its language,
size and where it starts in the final text, then every configured stage
with its status and edit count.

A failed stage is reported in the table rather than as an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormatFlag(cmd); err != nil {
				return err
			}

			sess, err := openSession(cmd, args)
			if err != nil {
				return err
			}

			rep, err := newReporter(cmd, sess.cfg, func(opts *reporter.Options) {
				opts.ShowSummary = !noSummary
			})
			if err != nil {
				return err
			}
			return rep.ReportInspection(sess.ctx, reporter.Inspect(sess.snap))
		},
	}

	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "Omit the build summary")
	addFormatFlags(cmd)

	return cmd
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/internal/ui/pretty"
	"github.com/yaklabco/srcmap/pkg/fsutil"
)

// applyFlags holds the flags for the apply command.
type applyFlags struct {
	output string
	stage  string
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [files...]",
		Short: "Run the stages and print the transformed text",
		Long: `Build the input through every enabled stage and print the final text.

Each file is one tab of the document, in argument order. A sketch folder
contributes its .pde and .java files, the tab named after the folder
first. Markdown files contribute one tab per fenced code block. With no
files, a single tab is read from stdin.

Examples:
  srcmap apply sketch.pde helpers.pde
  srcmap apply ./MySketch
  srcmap apply --stage syntax sketch.pde
  srcmap apply -o Sketch.java sketch.pde
  cat sketch.pde | srcmap apply`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write the result to a file instead of stdout")
	cmd.Flags().StringVar(&flags.stage, "stage", "", "Print the output of the named stage instead of the final text")

	return cmd
}

func runApply(cmd *cobra.Command, args []string, flags *applyFlags) error {
	sess, err := openSession(cmd, args)
	if err != nil {
		return err
	}

	if failed, ok := failedStage(sess.snap); ok {
		sess.logger.Error("stage failed",
			logging.FieldStage, failed.Name,
			logging.FieldError, failed.Err,
		)
		return fmt.Errorf("%w: %w", ErrStageFailed, failed.Err)
	}

	text := sess.snap.Final
	if flags.stage != "" {
		// Disabled stages never reach the snapshot.
		result, ok := sess.snap.Stage(flags.stage)
		if !ok {
			return usageErrorf("stage %q is not enabled", flags.stage)
		}
		text = result.Output
	}

	if flags.output == "" {
		if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	changed, err := fsutil.WriteAtomicIfChanged(sess.ctx, flags.output, []byte(text), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if changed {
		sess.logger.Info("wrote output",
			logging.FieldOutput, flags.output,
			logging.FieldOutputSize, len(text),
		)
	} else {
		sess.logger.Debug("output unchanged", logging.FieldOutput, flags.output)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), cmd.ErrOrStderr()))
	fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummaryOneLine(sess.snap))
	return nil
}

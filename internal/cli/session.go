package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/srcmap/internal/configloader"
	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/rewrite"
	"github.com/yaklabco/srcmap/pkg/source"
)

// stdinName names the single tab read from standard input.
const stdinName = "stdin"

// session is the resolved configuration and built document a command
// works on.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	snap   *document.Snapshot
}

// openSession loads configuration, reads the input tabs named by args (or
// stdin) and builds them through the configured stages.
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := loadConfig(ctx, cmd, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		logging.SetLevel("debug")
	}

	passes, err := rewrite.FromStages(cfg.Stages, cfg.Strict)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	docPasses := make([]document.Pass, len(passes))
	for i, pass := range passes {
		docPasses[i] = pass
	}

	docTabs, err := readTabs(ctx, cmd, args, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded input", logging.FieldTabs, len(docTabs))

	store := document.NewStore(docPasses...)
	store.Subscribe(func(snap *document.Snapshot) {
		logger.Debug("snapshot published",
			logging.FieldGeneration, snap.Generation,
			logging.FieldOutputSize, len(snap.Final),
		)
	})

	snap, _, err := store.Rebuild(ctx, docTabs)
	if err != nil {
		if errors.Is(err, document.ErrTooManyStages) {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		return nil, fmt.Errorf("build document: %w", err)
	}

	return &session{ctx: ctx, cfg: cfg, logger: logger, snap: snap}, nil
}

func loadConfig(ctx context.Context, cmd *cobra.Command, logger *log.Logger) (*config.Config, error) {
	flags := cmd.Flags()

	cliConfig := &config.Config{}
	if flag := flags.Lookup("color"); flag != nil && flag.Changed {
		cliConfig.Color = config.ColorMode(flag.Value.String())
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		cliConfig.Format = config.OutputFormat(format)
	}
	cliConfig.Strict, _ = flags.GetBool("strict")
	cliConfig.Debug, _ = flags.GetBool("debug")

	explicitPath, _ := flags.GetString("config")

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workingDir,
		ExplicitPath: explicitPath,
		CLIConfig:    cliConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, path := range result.LoadedFrom {
		logger.Debug("loaded config", logging.FieldPath, path)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	cfg := result.Config
	if names, _ := flags.GetStringSlice("stages"); len(names) > 0 {
		if err := configloader.SelectStages(cfg, names); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	if languages, _ := flags.GetStringSlice("lang"); len(languages) > 0 {
		cfg.Markdown.Languages = languages
	}

	return cfg, nil
}

func readTabs(ctx context.Context, cmd *cobra.Command, args []string, cfg *config.Config) ([]document.Tab, error) {
	if len(args) > 0 {
		jobs, _ := cmd.Flags().GetInt("jobs")
		docTabs, err := source.Load(ctx, args, source.Options{
			Markdown:  cfg.Markdown.Enabled,
			Languages: cfg.Markdown.Languages,
			Jobs:      jobs,
		})
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return docTabs, nil
	}

	input := cmd.InOrStdin()
	if file, ok := input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return nil, fmt.Errorf("%w: pass files or pipe a sketch on stdin", ErrNoInput)
	}

	docTabs, err := source.LoadReader(stdinName, input)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return docTabs, nil
}

// failedStage returns the result of the stage that stopped the build.
func failedStage(snap *document.Snapshot) (document.StageResult, bool) {
	for _, result := range snap.Stages {
		if result.Err != nil {
			return result, true
		}
	}
	return document.StageResult{}, false
}

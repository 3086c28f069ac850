package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("nil sides", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		assert.Same(t, cfg, merge(nil, cfg))
		assert.Same(t, cfg, merge(cfg, nil))
	})

	t.Run("zero override keeps base", func(t *testing.T) {
		t.Parallel()

		base := config.NewConfig()
		base.Strict = true
		got := merge(base, &config.Config{})
		assert.Equal(t, base, got)
		assert.NotSame(t, base, got)
	})

	t.Run("set values win", func(t *testing.T) {
		t.Parallel()

		base := config.NewConfig()
		got := merge(base, &config.Config{
			Color:    config.ColorNever,
			Markdown: config.MarkdownConfig{Languages: []string{"java"}},
			Stages:   []config.StageConfig{{Name: "solo"}},
		})

		assert.Equal(t, config.ColorNever, got.Color)
		assert.Equal(t, config.FormatText, got.Format)
		assert.Equal(t, []string{"java"}, got.Markdown.Languages)
		require.Len(t, got.Stages, 1)
		assert.Equal(t, "solo", got.Stages[0].Name)
		assert.Len(t, base.Stages, 2, "base is not modified")
	})
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	got := MergeAll(
		config.NewConfig(),
		&config.Config{Format: config.FormatJSON},
		&config.Config{Strict: true},
	)
	assert.Equal(t, config.FormatJSON, got.Format)
	assert.True(t, got.Strict)
}

func TestSelectStages(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, SelectStages(cfg, []string{config.StageCompile}))

	enabled := cfg.EnabledStages()
	require.Len(t, enabled, 1)
	assert.Equal(t, config.StageCompile, enabled[0].Name)

	err := SelectStages(config.NewConfig(), []string{"nope", "also-nope", config.StageSyntax})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "also-nope, nope")
}

func TestValidateDuplicateStages(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Stages = []config.StageConfig{
		{Name: "a", Rules: []config.RuleConfig{{Name: "r", Kind: config.RuleInsert, Text: "x"}}},
		{Name: "a", Rules: []config.RuleConfig{{Name: "r", Kind: config.RuleInsert, Text: "y"}}},
		{Name: "", Enabled: new(bool), Rules: []config.RuleConfig{{Name: "r", Kind: config.RuleInsert, Text: "z"}}},
	}

	result := Validate(cfg)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "stages[1].name", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "also stages[0]")
	assert.Equal(t, "stages[2].name", result.Errors[1].Field)

	messages := ValidateWithFile(cfg, "cfg.yml").AllMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "error: cfg.yml: stages[1].name: duplicate stage \"a\" (also stages[0])", messages[0])
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "SRCMAP_FORMAT")
	assert.Contains(t, vars, "SRCMAP_STAGES")
	assert.Equal(t, "SRCMAP_MARKDOWN_ENABLED", GetEnvVarName("markdown.enabled"))
	assert.Empty(t, GetEnvVarName("nope"))
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.True(t, cfg.Markdown.Enabled)
	assert.False(t, cfg.Strict)

	require.Len(t, cfg.Stages, 2)
	assert.Equal(t, config.StageSyntax, cfg.Stages[0].Name)
	assert.Equal(t, config.StageCompile, cfg.Stages[1].Name)
	assert.Len(t, cfg.EnabledStages(), 2)
}

func TestDefaultStagesAreFresh(t *testing.T) {
	t.Parallel()

	first := config.DefaultStages()
	first[0].Rules[0].Replacement = "changed"

	assert.Equal(t, "0xff", config.DefaultStages()[0].Rules[0].Replacement)
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.ColorNever.IsValid())
	assert.False(t, config.ColorMode("sometimes").IsValid())
}

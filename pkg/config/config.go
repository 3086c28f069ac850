// Package config defines core configuration types for srcmap.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat specifies the output format for mapping results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// RuleKind selects what a rewrite rule does with its matches.
type RuleKind string

const (
	// RuleReplace replaces each match with the expanded replacement.
	RuleReplace RuleKind = "replace"
	// RuleHoist moves each match to the start of the output.
	RuleHoist RuleKind = "hoist"
	// RuleInsert inserts fixed text at the start or end of the input.
	RuleInsert RuleKind = "insert"
)

// Anchor positions an insert rule.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorEnd   Anchor = "end"
)

// RuleConfig describes one rewrite rule.
type RuleConfig struct {
	Name        string   `mapstructure:"name" yaml:"name"`
	Kind        RuleKind `mapstructure:"kind" yaml:"kind"`
	Pattern     string   `mapstructure:"pattern" yaml:"pattern,omitempty"`
	Group       int      `mapstructure:"group" yaml:"group,omitempty"`
	Replacement string   `mapstructure:"replacement" yaml:"replacement,omitempty"`
	Text        string   `mapstructure:"text" yaml:"text,omitempty"`
	At          Anchor   `mapstructure:"at" yaml:"at,omitempty"`
}

// StageConfig describes one transformation stage.
type StageConfig struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Enabled defaults to true when unset.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// Scrub matches rules against the input with comments and string
	// literals blanked out.
	Scrub bool `mapstructure:"scrub" yaml:"scrub"`

	// Languages restricts the stage to inputs detected as one of these.
	Languages []string `mapstructure:"languages" yaml:"languages,omitempty"`

	Rules []RuleConfig `mapstructure:"rules" yaml:"rules"`
}

// IsEnabled reports whether the stage should run.
func (s StageConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// MarkdownConfig controls loading tabs from Markdown fenced code blocks.
type MarkdownConfig struct {
	// Enabled treats .md inputs as documents whose code blocks are tabs.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Languages filters code blocks by info string. Empty keeps every block.
	Languages []string `mapstructure:"languages" yaml:"languages,omitempty"`
}

// Config is the root configuration structure for srcmap.
type Config struct {
	// Format is the default output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Color controls styled output.
	Color ColorMode `mapstructure:"color" yaml:"color"`

	// Strict validates producer edits before applying them and fails on
	// overlaps or out-of-range spans.
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// Markdown configures Markdown inputs.
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`

	// Stages are the transformation stages, in order.
	Stages []StageConfig `mapstructure:"stages" yaml:"stages"`

	// CLI-level options (not persisted to config files).

	// Debug enables debug logging.
	Debug bool `mapstructure:"-" yaml:"-"`

	// Output is the file apply writes to instead of stdout.
	Output string `mapstructure:"-" yaml:"-"`
}

// EnabledStages returns the stages that should run, in order.
func (c *Config) EnabledStages() []StageConfig {
	var out []StageConfig
	for _, stage := range c.Stages {
		if stage.IsEnabled() {
			out = append(out, stage)
		}
	}
	return out
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Format: FormatText,
		Color:  ColorAuto,
		Markdown: MarkdownConfig{
			Enabled:   true,
			Languages: nil,
		},
		Stages: DefaultStages(),
	}
}

package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	// Prepend header
	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unset fields keep their
// zero values; callers merge the result over NewConfig.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Format: c.Format,
		Color:  c.Color,
		Strict: c.Strict,
		Markdown: MarkdownConfig{
			Enabled:   c.Markdown.Enabled,
			Languages: cloneStrings(c.Markdown.Languages),
		},
		Debug:  c.Debug,
		Output: c.Output,
	}

	if c.Stages != nil {
		clone.Stages = make([]StageConfig, len(c.Stages))
		for i, stage := range c.Stages {
			clone.Stages[i] = stage.Clone()
		}
	}

	return clone
}

// Clone creates a deep copy of a StageConfig.
func (s StageConfig) Clone() StageConfig {
	clone := StageConfig{
		Name:      s.Name,
		Scrub:     s.Scrub,
		Languages: cloneStrings(s.Languages),
	}

	if s.Enabled != nil {
		enabled := *s.Enabled
		clone.Enabled = &enabled
	}

	if s.Rules != nil {
		clone.Rules = make([]RuleConfig, len(s.Rules))
		copy(clone.Rules, s.Rules)
	}

	return clone
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

package configloader

import "github.com/yaklabco/srcmap/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
//
// File layers are decoded over the running config instead (see
// loadConfigFile), so a file can turn a boolean off; merge is for flag
// overrides where only set values are carried.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// false is the zero value, so flags can only switch these on.
	if override.Strict {
		result.Strict = true
	}
	if override.Debug {
		result.Debug = true
	}
	if override.Markdown.Enabled {
		result.Markdown.Enabled = true
	}

	if override.Markdown.Languages != nil {
		result.Markdown.Languages = override.Markdown.Languages
	}

	// A stage list is an ordered pipeline; merging element-wise would mix
	// rules from unrelated stages.
	if override.Stages != nil {
		result.Stages = make([]config.StageConfig, len(override.Stages))
		for i, stage := range override.Stages {
			result.Stages[i] = stage.Clone()
		}
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

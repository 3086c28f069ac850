package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/srcmap/pkg/config"
)

// envVarPrefix is the prefix for all srcmap environment variables.
const envVarPrefix = "SRCMAP_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":             {field: "format", typ: envTypeString, help: "Output format: text or json"},
	"COLOR":              {field: "color", typ: envTypeString, help: "Color mode: auto, always, or never"},
	"STRICT":             {field: "strict", typ: envTypeBool, help: "Reject overlapping edits: true or false"},
	"DEBUG":              {field: "debug", typ: envTypeBool, help: "Enable debug logging: true or false"},
	"MARKDOWN_ENABLED":   {field: "markdown.enabled", typ: envTypeBool, help: "Load Markdown code blocks as tabs: true or false"},
	"MARKDOWN_LANGUAGES": {field: "markdown.languages", typ: envTypeSlice, help: "Comma-separated code block languages to keep"},
	"STAGES":             {field: "stages", typ: envTypeSlice, help: "Comma-separated names of the stages to run"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SRCMAP_ (e.g., SRCMAP_FORMAT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "strict":
		cfg.Strict = value
	case "debug":
		cfg.Debug = value
	case "markdown.enabled":
		cfg.Markdown.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "markdown.languages":
		cfg.Markdown.Languages = value
	case "stages":
		return SelectStages(cfg, value)
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// SelectStages enables exactly the named stages, keeping their configured
// order. Naming a stage that is not configured is an error.
func SelectStages(cfg *config.Config, names []string) error {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	for i := range cfg.Stages {
		enabled := want[cfg.Stages[i].Name]
		cfg.Stages[i].Enabled = &enabled
		delete(want, cfg.Stages[i].Name)
	}

	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for name := range want {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return fmt.Errorf("unknown stage(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/document"
	"github.com/yaklabco/srcmap/pkg/rewrite"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "stages[0].rules[1]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., a stage without rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	validateStages(cfg, result)

	return result
}

func validateStages(cfg *config.Config, result *ValidationResult) {
	seen := make(map[string]int, len(cfg.Stages))

	for i, stage := range cfg.Stages {
		field := fmt.Sprintf("stages[%d]", i)

		if stage.Name == "" {
			result.addError(field+".name", stage.Name, "stage name is required")
		} else if prev, dup := seen[stage.Name]; dup {
			result.addError(field+".name", stage.Name, "duplicate stage %q (also stages[%d])", stage.Name, prev)
		} else {
			seen[stage.Name] = i
		}

		if len(stage.Rules) == 0 {
			result.addWarning(field, stage.Name, "stage %q has no rules", stage.Name)
		}

		for j, rule := range stage.Rules {
			if _, err := rewrite.Compile(rule, rewrite.DefaultMatchTimeout); err != nil {
				result.addError(fmt.Sprintf("%s.rules[%d]", field, j), rule.Name, "%v", err)
			}
		}
	}

	if enabled := len(cfg.EnabledStages()); enabled > document.MaxStages {
		result.addError("stages", enabled,
			"%d stages enabled; at most %d can run", enabled, document.MaxStages)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

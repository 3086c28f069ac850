package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Document fields.
	FieldTabs       = "tabs"
	FieldTab        = "tab"
	FieldLength     = "length"
	FieldGeneration = "generation"
	FieldLanguage   = "language"

	// Stage fields.
	FieldStage      = "stage"
	FieldEdits      = "edits"
	FieldRule       = "rule"
	FieldMatches    = "matches"
	FieldInputSize  = "input_size"
	FieldOutputSize = "output_size"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

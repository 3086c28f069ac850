package config

// Stage names of the built-in preset.
const (
	StageSyntax  = "syntax"
	StageCompile = "compile"
)

// DefaultClassName is the class the preset wraps sketches in.
const DefaultClassName = "Sketch"

// DefaultStages returns the built-in two-stage preset that turns a
// Processing sketch into compilable Java.
//
// The syntax stage rewrites sketch-only syntax (web colors, type
// conversion calls), hoists imports above the class and wraps the body.
// The compile stage then makes methods public, maps the color type to int
// and suffixes float literals.
func DefaultStages() []StageConfig {
	return []StageConfig{
		{
			Name:      StageSyntax,
			Scrub:     true,
			Languages: []string{"processing"},
			Rules: []RuleConfig{
				{
					Name:        "hex-color",
					Kind:        RuleReplace,
					Pattern:     `(?<![\w#])(#)[0-9A-Fa-f]{6}(?!\w)`,
					Group:       1,
					Replacement: "0xff",
				},
				{
					Name:        "type-conversion",
					Kind:        RuleReplace,
					Pattern:     `(?<![\w.])(int|char|float|boolean|byte)(?=\s*\()`,
					Group:       1,
					Replacement: "PApplet.parse${1:title}",
				},
				{
					Name:    "import-hoist",
					Kind:    RuleHoist,
					Pattern: `(?:^|;)\s*(import\s+(?:static\s+)?(?:\w+\s*\.)*\s*\S+\s*;)`,
					Group:   1,
				},
				{
					Name: "class-header",
					Kind: RuleInsert,
					Text: "\npublic class " + DefaultClassName + " extends PApplet {\n",
					At:   AnchorStart,
				},
				{
					Name: "class-footer",
					Kind: RuleInsert,
					Text: "\n}\n",
					At:   AnchorEnd,
				},
			},
		},
		{
			Name:  StageCompile,
			Scrub: true,
			Rules: []RuleConfig{
				{
					Name:        "public-methods",
					Kind:        RuleReplace,
					Pattern:     `^[ \t]*()(?:void|int|float|boolean|char|byte|double|long|color|String)(?:\s*\[\s*\])*\s+\w+\s*\([^;{}()]*\)\s*\{`,
					Group:       1,
					Replacement: "public ",
				},
				{
					Name:        "color-type",
					Kind:        RuleReplace,
					Pattern:     `(?<![\w.])(color)(?=(?:\s*\[\s*\])*\s+[A-Za-z_])`,
					Group:       1,
					Replacement: "int",
				},
				{
					Name:        "float-suffix",
					Kind:        RuleReplace,
					Pattern:     `(?<![\w.])(?:\d+\.\d*(?:[eE][-+]?\d+)?|\.\d+(?:[eE][-+]?\d+)?|\d+[eE][-+]?\d+)()(?![\w.])`,
					Group:       1,
					Replacement: "f",
				},
			},
		},
	}
}

package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/rewrite"
	"github.com/yaklabco/srcmap/pkg/transform"
)

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    config.RuleConfig
		wantErr string
	}{
		{
			name:    "unknown kind",
			rule:    config.RuleConfig{Name: "r", Kind: "rename", Pattern: "x"},
			wantErr: "unknown rule kind",
		},
		{
			name:    "missing pattern",
			rule:    config.RuleConfig{Name: "r", Kind: config.RuleReplace},
			wantErr: "needs a pattern",
		},
		{
			name:    "invalid pattern",
			rule:    config.RuleConfig{Name: "r", Kind: config.RuleReplace, Pattern: "(unclosed"},
			wantErr: "compile pattern",
		},
		{
			name:    "group out of range",
			rule:    config.RuleConfig{Name: "r", Kind: config.RuleHoist, Pattern: "(a)", Group: 2},
			wantErr: "no group 2",
		},
		{
			name:    "negative group",
			rule:    config.RuleConfig{Name: "r", Kind: config.RuleReplace, Pattern: "a", Group: -1},
			wantErr: "negative group",
		},
		{
			name:    "bad anchor",
			rule:    config.RuleConfig{Name: "r", Kind: config.RuleInsert, Text: "x", At: "middle"},
			wantErr: "unknown anchor",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := rewrite.Compile(testCase.rule, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantErr)
			assert.Contains(t, err.Error(), "rule r")
		})
	}
}

func TestRuleEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  config.RuleConfig
		input string
		want  []transform.Edit
	}{
		{
			name:  "replace whole match",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: `\bcolor\b`, Replacement: "int"},
			input: "color a; color b;",
			want: []transform.Edit{
				transform.Replace(0, 5, "int"),
				transform.Replace(9, 5, "int"),
			},
		},
		{
			name:  "replace group with expansion",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: `(int)\(`, Group: 1, Replacement: "parse${1:title}"},
			input: "x = int(y);",
			want:  []transform.Edit{transform.Replace(4, 3, "parseInt")},
		},
		{
			name:  "empty group becomes insertion",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: `\d+\.\d+()`, Group: 1, Replacement: "f"},
			input: "a(1.5, 2.25)",
			want: []transform.Edit{
				transform.Replace(5, 0, "f"),
				transform.Replace(11, 0, "f"),
			},
		},
		{
			name:  "line anchors",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: `^()void`, Group: 1, Replacement: "public "},
			input: "void a() {}\nvoid b() {}",
			want: []transform.Edit{
				transform.Replace(0, 0, "public "),
				transform.Replace(12, 0, "public "),
			},
		},
		{
			name:  "hoist",
			rule:  config.RuleConfig{Kind: config.RuleHoist, Pattern: `(import [\w.]+;)`, Group: 1},
			input: "draw();\nimport a.B;\n",
			want: []transform.Edit{
				transform.Move(8, 11, 0),
				transform.Insert(0, "\n"),
			},
		},
		{
			name:  "insert at start",
			rule:  config.RuleConfig{Kind: config.RuleInsert, Text: "head"},
			input: "body",
			want:  []transform.Edit{transform.Insert(0, "head")},
		},
		{
			name:  "insert at end",
			rule:  config.RuleConfig{Kind: config.RuleInsert, Text: "tail", At: config.AnchorEnd},
			input: "body",
			want:  []transform.Edit{transform.Insert(4, "tail")},
		},
		{
			name:  "multibyte input uses byte offsets",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: "b", Replacement: "B"},
			input: "äb€b",
			want: []transform.Edit{
				transform.Replace(2, 1, "B"),
				transform.Replace(6, 1, "B"),
			},
		},
		{
			name:  "no match",
			rule:  config.RuleConfig{Kind: config.RuleReplace, Pattern: "zzz", Replacement: "y"},
			input: "abc",
			want:  nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rule, err := rewrite.Compile(testCase.rule, 0)
			require.NoError(t, err)

			got, err := rule.Edits(testCase.input, testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestRuleEditsMatchScrubbedText(t *testing.T) {
	t.Parallel()

	rule, err := rewrite.Compile(config.RuleConfig{
		Kind:        config.RuleReplace,
		Pattern:     `"([^"]*)"`,
		Replacement: "<$1>",
	}, 0)
	require.NoError(t, err)

	input := `x = "hi";`
	scrubbed, err := rewrite.Scrub(input)
	require.NoError(t, err)

	got, err := rule.Edits(input, scrubbed)
	require.NoError(t, err)
	assert.Equal(t, []transform.Edit{transform.Replace(4, 4, "<hi>")}, got)
}

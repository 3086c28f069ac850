package rewrite

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/srcmap/internal/logging"
	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/langdetect"
	"github.com/yaklabco/srcmap/pkg/transform"
)

// Options configures a Pass.
type Options struct {
	// Scrub matches rules against the input with comments and literals
	// blanked out.
	Scrub bool

	// Languages restricts the pass to inputs detected as one of these.
	// Other inputs get no edits.
	Languages []string

	// Strict rejects edits that overlap or fall outside the input.
	Strict bool

	// MatchTimeout bounds each rule's matching. Zero uses DefaultMatchTimeout.
	MatchTimeout time.Duration
}

// Pass applies a list of rules as one transformation stage.
// Edits of all rules are collected in rule order; at equal offsets earlier
// rules emit first.
type Pass struct {
	name  string
	rules []*Rule
	opts  Options
}

// NewPass compiles rules into a pass.
func NewPass(name string, rules []config.RuleConfig, opts Options) (*Pass, error) {
	timeout := opts.MatchTimeout
	if timeout == 0 {
		timeout = DefaultMatchTimeout
	}

	pass := &Pass{name: name, opts: opts}
	for _, cfg := range rules {
		rule, err := Compile(cfg, timeout)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		pass.rules = append(pass.rules, rule)
	}
	return pass, nil
}

// FromConfig builds the pass described by a stage configuration.
func FromConfig(stage config.StageConfig, strict bool) (*Pass, error) {
	return NewPass(stage.Name, stage.Rules, Options{
		Scrub:     stage.Scrub,
		Languages: stage.Languages,
		Strict:    strict,
	})
}

// FromStages builds one pass per enabled stage.
func FromStages(stages []config.StageConfig, strict bool) ([]*Pass, error) {
	var passes []*Pass
	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		pass, err := FromConfig(stage, strict)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}
	return passes, nil
}

// Name returns the stage name.
func (p *Pass) Name() string {
	return p.name
}

// Rules returns the compiled rules.
func (p *Pass) Rules() []*Rule {
	return p.rules
}

// Edits runs every rule over input.
func (p *Pass) Edits(ctx context.Context, input string) ([]transform.Edit, error) {
	logger := logging.FromContext(ctx)

	if len(p.opts.Languages) > 0 {
		lang := langdetect.Detect([]byte(input))
		if !langdetect.Matches(lang, p.opts.Languages) {
			logger.Debug("stage does not apply to language", logging.FieldLanguage, lang)
			return nil, nil
		}
	}

	text := input
	if p.opts.Scrub {
		scrubbed, err := Scrub(input)
		if err != nil {
			return nil, err
		}
		text = scrubbed
	}

	var edits []transform.Edit
	for _, rule := range p.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ruleEdits, err := rule.Edits(input, text)
		if err != nil {
			return nil, err
		}

		logger.Debug("rule matched",
			logging.FieldRule, rule.Name,
			logging.FieldMatches, len(ruleEdits),
		)
		edits = append(edits, ruleEdits...)
	}

	if p.opts.Strict {
		if err := check(edits, len(input)); err != nil {
			return nil, err
		}
	}

	return edits, nil
}

func check(edits []transform.Edit, inputLen int) error {
	if err := transform.ValidateEdits(edits, inputLen); err != nil {
		return err
	}
	sorted := make([]transform.Edit, len(edits))
	copy(sorted, edits)
	transform.SortEdits(sorted)
	return transform.DetectConflicts(sorted)
}

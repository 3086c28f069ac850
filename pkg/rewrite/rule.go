// Package rewrite produces transformation edits from regular-expression
// rules. A Pass bundles the rules of one stage and plugs into
// document.Build.
package rewrite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/yaklabco/srcmap/pkg/config"
	"github.com/yaklabco/srcmap/pkg/transform"
)

// DefaultMatchTimeout bounds the time a single rule may spend matching.
const DefaultMatchTimeout = 2 * time.Second

// HoistSeparator is inserted after every hoisted span.
const HoistSeparator = "\n"

var (
	// ErrUnknownKind is returned for a rule kind other than replace, hoist or insert.
	ErrUnknownKind = errors.New("unknown rule kind")

	// ErrMissingPattern is returned for a replace or hoist rule without a pattern.
	ErrMissingPattern = errors.New("rule needs a pattern")
)

// Rule is a compiled rewrite rule.
type Rule struct {
	Name        string
	Kind        config.RuleKind
	Group       int
	Replacement string
	Text        string
	At          config.Anchor

	re *regexp2.Regexp
}

// Compile validates cfg and compiles its pattern. Patterns use .NET syntax
// (look-around, named groups) with ^ and $ matching at line boundaries.
func Compile(cfg config.RuleConfig, timeout time.Duration) (*Rule, error) {
	rule := &Rule{
		Name:        cfg.Name,
		Kind:        cfg.Kind,
		Group:       cfg.Group,
		Replacement: cfg.Replacement,
		Text:        cfg.Text,
		At:          cfg.At,
	}

	switch cfg.Kind {
	case config.RuleInsert:
		switch cfg.At {
		case "", config.AnchorStart, config.AnchorEnd:
		default:
			return nil, fmt.Errorf("rule %s: unknown anchor %q", cfg.Name, cfg.At)
		}
		return rule, nil
	case config.RuleReplace, config.RuleHoist:
	default:
		return nil, fmt.Errorf("rule %s: %w %q", cfg.Name, ErrUnknownKind, cfg.Kind)
	}

	if cfg.Pattern == "" {
		return nil, fmt.Errorf("rule %s: %w", cfg.Name, ErrMissingPattern)
	}
	if cfg.Group < 0 {
		return nil, fmt.Errorf("rule %s: negative group %d", cfg.Name, cfg.Group)
	}

	re, err := regexp2.Compile(cfg.Pattern, regexp2.Multiline)
	if err != nil {
		return nil, fmt.Errorf("rule %s: compile pattern: %w", cfg.Name, err)
	}
	if cfg.Group > 0 && !hasGroup(re, cfg.Group) {
		return nil, fmt.Errorf("rule %s: pattern has no group %d", cfg.Name, cfg.Group)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	rule.re = re

	return rule, nil
}

func hasGroup(re *regexp2.Regexp, group int) bool {
	for _, n := range re.GetGroupNumbers() {
		if n == group {
			return true
		}
	}
	return false
}

// Edits returns the rule's edits for input. Matching runs on text, which is
// input itself or a same-length scrubbed copy of it; replacement text is
// always taken from input.
func (r *Rule) Edits(input, text string) ([]transform.Edit, error) {
	if r.Kind == config.RuleInsert {
		if r.At == config.AnchorEnd {
			return []transform.Edit{transform.Insert(len(input), r.Text)}, nil
		}
		return []transform.Edit{transform.Insert(0, r.Text)}, nil
	}

	runes := newRuneIndex(text)
	var edits []transform.Edit

	match, err := r.re.FindStringMatch(text)
	for ; match != nil && err == nil; match, err = r.re.FindNextMatch(match) {
		start, end, ok := groupSpan(match, r.Group, runes)
		if !ok {
			continue
		}

		switch r.Kind {
		case config.RuleHoist:
			edits = append(edits,
				transform.Move(start, end-start, 0),
				transform.Insert(0, HoistSeparator),
			)
		default:
			replacement := expand(r.Replacement, func(group int) string {
				gs, ge, found := groupSpan(match, group, runes)
				if !found {
					return ""
				}
				return input[gs:ge]
			})
			edits = append(edits, transform.Replace(start, end-start, replacement))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Name, err)
	}

	return edits, nil
}

// groupSpan returns the byte span of the last capture of group in match.
func groupSpan(match *regexp2.Match, group int, runes runeIndex) (int, int, bool) {
	g := match.GroupByNumber(group)
	if g == nil || len(g.Captures) == 0 {
		return 0, 0, false
	}
	return runes.byteOffset(g.Index), runes.byteOffset(g.Index + g.Length), true
}

// runeIndex converts the rune indices reported by regexp2 into byte offsets.
type runeIndex struct {
	offsets []int // nil for ASCII text
	size    int
}

func newRuneIndex(text string) runeIndex {
	idx := runeIndex{size: len(text)}
	for i := range len(text) {
		if text[i] >= utf8.RuneSelf {
			idx.offsets = make([]int, 0, len(text)+1)
			for offset := range text {
				idx.offsets = append(idx.offsets, offset)
			}
			idx.offsets = append(idx.offsets, len(text))
			break
		}
	}
	return idx
}

func (x runeIndex) byteOffset(r int) int {
	if x.offsets == nil {
		return min(r, x.size)
	}
	if r >= len(x.offsets) {
		return x.size
	}
	return x.offsets[r]
}

// expand substitutes group references in template: $N, ${N}, and
// ${N:upper|lower|title}. $$ is a literal dollar sign.
func expand(template string, group func(int) string) string {
	if !strings.Contains(template, "$") {
		return template
	}

	var buf strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '$' || i+1 >= len(template) {
			buf.WriteByte(c)
			continue
		}

		next := template[i+1]
		switch {
		case next == '$':
			buf.WriteByte('$')
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(template) && template[j] >= '0' && template[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(template[i+1 : j])
			buf.WriteString(group(n))
			i = j - 1
		case next == '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				buf.WriteByte(c)
				continue
			}
			ref, modifier, _ := strings.Cut(template[i+2:i+end], ":")
			n, err := strconv.Atoi(ref)
			if err != nil {
				buf.WriteString(template[i : i+end+1])
			} else {
				buf.WriteString(applyCase(group(n), modifier))
			}
			i += end
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

func applyCase(s, modifier string) string {
	switch modifier {
	case "upper":
		return strings.ToUpper(s)
	case "lower":
		return strings.ToLower(s)
	case "title":
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return s
		}
		return string(unicode.ToUpper(r)) + s[size:]
	default:
		return s
	}
}

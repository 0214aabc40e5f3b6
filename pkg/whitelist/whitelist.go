// Package whitelist strips links that are known to be unreachable from CI or
// that only illustrate syntax, before any link is checked.
//
// Patterns are compiled with regexp2 because the CDN rule needs a negative
// lookahead, which RE2 does not support.
package whitelist

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation. User patterns can backtrack.
const matchTimeout = 5 * time.Second

// ErrEmptyPattern is returned for a blank whitelist pattern.
var ErrEmptyPattern = errors.New("empty whitelist pattern")

// Rule is a single substitution. Every match of Pattern is replaced with "".
type Rule struct {
	Name    string
	Pattern string

	re *regexp2.Regexp
}

// Built-in rules, applied in this order before any configured pattern.
//
//nolint:gochecknoglobals // Read-only table.
var builtinRules = []Rule{
	// Not served on CI. Optionally preceded by "(" or "[".
	{Name: "localhost", Pattern: `(\(|\[)?http://localhost:8000`},
	// Script tags in examples point at illustrative URLs.
	{Name: "script-src", Pattern: `src="http.*?"`},
	// The CDN root is not a page; sub-paths are.
	{Name: "cdn-root", Pattern: `https://cdn\.ampproject\.org(?!/)`},
}

// Filter applies an ordered list of rules to Markdown text.
type Filter struct {
	rules []Rule
}

// New returns a Filter with the built-in rules followed by extra patterns.
func New(extra ...string) (*Filter, error) {
	rules := make([]Rule, 0, len(builtinRules)+len(extra))
	for _, rule := range builtinRules {
		compiled, err := compile(rule)
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiled)
	}

	for i, pattern := range extra {
		compiled, err := compile(Rule{Name: fmt.Sprintf("custom-%d", i+1), Pattern: pattern})
		if err != nil {
			return nil, err
		}
		rules = append(rules, compiled)
	}

	return &Filter{rules: rules}, nil
}

// Default returns a Filter holding only the built-in rules.
func Default() *Filter {
	f, err := New()
	if err != nil {
		panic(fmt.Sprintf("whitelist: built-in rules do not compile: %v", err))
	}
	return f
}

// Validate reports whether pattern can be used as a whitelist entry.
func Validate(pattern string) error {
	_, err := compile(Rule{Pattern: pattern})
	return err
}

// Rules returns the rules in application order.
func (f *Filter) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// Apply returns markdown with every whitelisted occurrence removed.
// Each rule operates on the output of the previous one.
func (f *Filter) Apply(markdown string) (string, error) {
	filtered := markdown
	for _, rule := range f.rules {
		out, err := rule.re.Replace(filtered, "", -1, -1)
		if err != nil {
			return "", fmt.Errorf("apply whitelist rule %s: %w", rule.Name, err)
		}
		filtered = out
	}
	return filtered, nil
}

func compile(rule Rule) (Rule, error) {
	if rule.Pattern == "" {
		return Rule{}, ErrEmptyPattern
	}

	re, err := regexp2.Compile(rule.Pattern, regexp2.None)
	if err != nil {
		return Rule{}, fmt.Errorf("compile whitelist pattern %q: %w", rule.Pattern, err)
	}
	re.MatchTimeout = matchTimeout

	rule.re = re
	return rule, nil
}

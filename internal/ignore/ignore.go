// Package ignore implements gitignore-compatible ignore rules.
//
// Patterns are parsed into Rules, each compiled to a regular expression
// that is evaluated against the slash-separated path relative to the
// directory the rule was defined in. Rules are grouped into a Spec, and
// Specs are concatenated as a walk descends so that rules from deeper
// ignore files are consulted after the ones inherited from above.
//
// When a Spec contains a negation ("!pattern") the last matching rule
// decides; otherwise the first match is enough.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrRelativeBase is returned when a base directory is not absolute.
var ErrRelativeBase = errors.New("ignore: base directory must be absolute")

// DefaultPatterns are the rules every walk starts with unless the caller
// supplies its own parent Spec.
var DefaultPatterns = []string{".git/", ".svn/", "CVS/"}

// Empty returns a Spec with no rules.
func Empty() *Spec {
	return &Spec{cache: newPathCache()}
}

// FromPatterns parses patterns relative to base, an absolute directory.
func FromPatterns(patterns []string, base string, opts ...Option) (*Spec, error) {
	if !filepath.IsAbs(base) {
		return nil, fmt.Errorf("%w: %q", ErrRelativeBase, base)
	}
	o := makeParseOptions(opts)
	base = filepath.Clean(base)

	rules := make([]*Rule, 0, len(patterns))
	for _, p := range patterns {
		r, err := parseRule(p, base, nil)
		if err != nil {
			o.logger.Warn("ignore: skipping pattern %q: %v", p, err)
			continue
		}
		if r == nil {
			o.logger.Debug("ignore: pattern %q yields no rule", p)
			continue
		}
		rules = append(rules, r)
	}
	return newSpec(rules), nil
}

// DefaultSpec returns DefaultPatterns rooted at root.
func DefaultSpec(root string, opts ...Option) (*Spec, error) {
	return FromPatterns(DefaultPatterns, root, opts...)
}

// FromIgnoreFile reads an ignore file and parses every line with the
// file's directory as base. Each rule records its file and line. A missing
// file yields an empty Spec and no error.
func FromIgnoreFile(path string, opts ...Option) (*Spec, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("ignore: resolving %q: %w", path, err)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("ignore: reading %s: %w", abs, err)
	}
	return parseContent(content, abs, makeParseOptions(opts)), nil
}

func parseContent(content []byte, file string, o parseOptions) *Spec {
	base := filepath.Dir(file)
	lines := strings.Split(string(normalizeContent(content)), "\n")

	rules := make([]*Rule, 0, len(lines))
	for i, line := range lines {
		src := &Source{File: file, Line: i + 1}
		r, err := parseRule(line, base, src)
		if err != nil {
			o.logger.Warn("ignore: %s: skipping pattern %q: %v", src, line, err)
			continue
		}
		if r == nil {
			continue
		}
		rules = append(rules, r)
	}
	o.logger.Debug("ignore: loaded %d rules from %s", len(rules), file)
	return newSpec(rules)
}

func newSpec(rules []*Rule) *Spec {
	s := &Spec{rules: rules, cache: newPathCache()}
	for _, r := range rules {
		if r.negate {
			s.negation = true
			break
		}
	}
	return s
}

// Concat returns a Spec holding the rules of every argument in order.
// Nil Specs are treated as empty. The arguments are not modified.
func Concat(specs ...*Spec) *Spec {
	n := 0
	for _, s := range specs {
		if s != nil {
			n += len(s.rules)
		}
	}
	rules := make([]*Rule, 0, n)
	for _, s := range specs {
		if s != nil {
			rules = append(rules, s.rules...)
		}
	}
	return newSpec(rules)
}

// Concat returns s followed by other.
func (s *Spec) Concat(other *Spec) *Spec {
	return Concat(s, other)
}

// Len returns the number of rules.
func (s *Spec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// HasNegation reports whether any rule is a negation.
func (s *Spec) HasNegation() bool {
	return s != nil && s.negation
}

// Rules returns the rules in definition order.
func (s *Spec) Rules() []*Rule {
	if s == nil {
		return nil
	}
	out := make([]*Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Patterns returns the pattern text of every rule in definition order.
func (s *Spec) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.pattern
	}
	return out
}

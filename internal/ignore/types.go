package ignore

import (
	"fmt"
	"regexp"
)

// Source records where a Rule was read from.
type Source struct {
	File string // absolute path of the ignore file
	Line int    // 1-indexed
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Rule is one parsed ignore pattern. Rules are immutable once built.
type Rule struct {
	pattern  string         // original pattern text
	regex    *regexp.Regexp // compiled matcher, evaluated against base-relative paths
	negate   bool           // pattern started with !
	dirOnly  bool           // pattern ended with /
	anchored bool           // pattern is matched from base only
	base     string         // absolute directory the rule is relative to
	source   *Source        // nil for rules not read from a file
}

// Spec is an ordered collection of Rules. A Spec is never mutated after it
// is built; Concat returns a new one.
type Spec struct {
	rules    []*Rule
	negation bool
	cache    *pathCache
}

// MatchResult describes which rule decided a path.
type MatchResult struct {
	// Rule is the deciding rule, nil when nothing matched.
	Rule *Rule

	// Matched is true when any rule matched.
	Matched bool

	// Ignored is the final decision after negation.
	Ignored bool
}

func (r MatchResult) String() string {
	if !r.Matched {
		return "no rule matched"
	}
	verdict := "ignored"
	if !r.Ignored {
		verdict = "re-included"
	}
	if r.Rule.source != nil {
		return fmt.Sprintf("%s by %q (%s)", verdict, r.Rule.pattern, r.Rule.source)
	}
	return fmt.Sprintf("%s by %q", verdict, r.Rule.pattern)
}

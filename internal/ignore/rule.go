package ignore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NewRule parses one gitignore pattern relative to base, which must be an
// absolute directory. Blank lines, comments and patterns that reduce to a
// lone "/" yield a nil Rule and a nil error.
func NewRule(pattern, base string) (*Rule, error) {
	if !filepath.IsAbs(base) {
		return nil, fmt.Errorf("%w: %q", ErrRelativeBase, base)
	}
	return parseRule(pattern, filepath.Clean(base), nil)
}

func parseRule(pattern, base string, src *Source) (*Rule, error) {
	if isBlankOrComment(pattern) {
		return nil, nil
	}

	p := trimTrailingWhitespace(pattern)

	negate := false
	if strings.HasPrefix(p, "!") {
		negate = true
		p = p[1:]
	}
	if strings.HasPrefix(p, `\#`) || strings.HasPrefix(p, `\!`) {
		p = p[1:]
	}

	p = collapseStars(p)
	if p == "" || strings.TrimSpace(p) == "/" {
		return nil, nil
	}

	dirOnly := strings.HasSuffix(p, "/")
	anchored := strings.HasPrefix(p, "/") || strings.Contains(p[:len(p)-1], "/")

	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if strings.HasPrefix(p, "**/") {
		p = strings.TrimPrefix(p, "**/")
		anchored = false
	}
	if p == "" {
		return nil, nil
	}

	re, err := compilePattern(p, anchored, dirOnly, negate)
	if err != nil {
		return nil, err
	}
	return &Rule{
		pattern:  pattern,
		regex:    re,
		negate:   negate,
		dirOnly:  dirOnly,
		anchored: anchored,
		base:     base,
		source:   src,
	}, nil
}

// Pattern returns the pattern text the rule was parsed from.
func (r *Rule) Pattern() string { return r.pattern }

// Negate reports whether the rule re-includes what it matches.
func (r *Rule) Negate() bool { return r.negate }

// DirOnly reports whether the rule only applies to directories.
func (r *Rule) DirOnly() bool { return r.dirOnly }

// Anchored reports whether the rule matches from its base only.
func (r *Rule) Anchored() bool { return r.anchored }

// Base returns the absolute directory the rule is evaluated against.
func (r *Rule) Base() string { return r.base }

// Source returns the file and line the rule came from, or nil.
func (r *Rule) Source() *Source { return r.source }

// Regexp returns the compiled expression in source form.
func (r *Rule) Regexp() string { return r.regex.String() }

// Match reports whether the absolute path is matched by the rule. Paths
// outside the rule's base never match, and neither does the base itself.
func (r *Rule) Match(path string, isDir bool) bool {
	return r.match(path, isDir, nil)
}

func (r *Rule) match(path string, isDir bool, cache *pathCache) bool {
	if r.dirOnly && !isDir {
		return false
	}

	rel, ok := cache.rel(path, r.base)
	if !ok || rel == "." {
		return false
	}
	if r.negate && isDir {
		rel += "/"
	}
	rel = strings.TrimPrefix(rel, "./")
	return r.regex.MatchString(rel)
}

// String returns a debug representation of the rule.
func (r *Rule) String() string {
	var flags []string
	if r.negate {
		flags = append(flags, "negate")
	}
	if r.dirOnly {
		flags = append(flags, "dirOnly")
	}
	if r.anchored {
		flags = append(flags, "anchored")
	}

	s := r.pattern
	if len(flags) > 0 {
		s += " [" + strings.Join(flags, ",") + "]"
	}
	return s + " @" + r.base
}

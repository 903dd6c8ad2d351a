// Package glob implements the include/exclude pattern dialect used for
// command-line and profile filters.
//
// Unlike ignore rules, a glob has no implicit anchoring: the whole
// slash-separated path, relative to a caller-supplied base, must match.
// Brace alternation ({a,b}) is supported, "**" matches any number of whole
// segments and "?" matches any single character.
package glob

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrEmptyPattern is returned for patterns with nothing left to match.
var ErrEmptyPattern = errors.New("glob: empty pattern")

// Pattern is a compiled glob. It is immutable and safe for concurrent use.
type Pattern struct {
	pattern string // as given
	posix   string // slash form, anchor and trailing slash removed
	dirOnly bool
	literal bool
	re      *regexp.Regexp
}

// New compiles pattern. A trailing "/" restricts the pattern to
// directories; a leading "/" or "./" is dropped.
func New(pattern string) (*Pattern, error) {
	p := pattern
	if filepath.Separator == '\\' {
		p = strings.ReplaceAll(p, `\`, "/")
	}

	dirOnly := strings.HasSuffix(p, "/")
	p = strings.TrimRight(p, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return nil, ErrEmptyPattern
	}

	g := &Pattern{pattern: pattern, posix: p, dirOnly: dirOnly}
	if !strings.ContainsAny(p, "*?[{") {
		g.literal = true
		return g, nil
	}
	g.re = compile(pattern, p)
	return g, nil
}

// MustNew is like New but panics on error.
func MustNew(pattern string) *Pattern {
	g, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return g
}

// String returns the pattern as given to New.
func (g *Pattern) String() string { return g.pattern }

// DirOnly reports whether the pattern only matches directories.
func (g *Pattern) DirOnly() bool { return g.dirOnly }

// Match reports whether rel, a path relative to the filter's base, fully
// matches the pattern.
func (g *Pattern) Match(rel string, isDir bool) bool {
	if g.dirOnly && !isDir {
		return false
	}
	rel = filepath.ToSlash(rel)
	for strings.HasPrefix(rel, "./") {
		rel = rel[2:]
	}
	if g.literal {
		return rel == g.posix
	}
	return g.re.MatchString(rel)
}

// MatchPath relativizes path to base and matches the result. Paths outside
// base never match.
func (g *Pattern) MatchPath(path, base string, isDir bool) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return g.Match(rel, isDir)
}

// List is an ordered set of patterns.
type List []*Pattern

// NewList compiles every pattern, skipping none.
func NewList(patterns []string) (List, error) {
	out := make(List, 0, len(patterns))
	for _, p := range patterns {
		g, err := New(p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Match returns the first pattern matching rel, or nil.
func (l List) Match(rel string, isDir bool) *Pattern {
	for _, g := range l {
		if g.Match(rel, isDir) {
			return g
		}
	}
	return nil
}

func compile(key, p string) *regexp.Regexp {
	if re, ok := regexCache.Get(key); ok {
		return re
	}
	re, err := regexp.Compile(translate(p, false))
	if err != nil {
		re = regexp.MustCompile(translate(p, true))
	}
	regexCache.Add(key, re)
	return re
}

// translate converts p to an anchored regular expression. When literal is
// set, brackets and braces lose their meaning.
func translate(p string, literal bool) string {
	var b strings.Builder
	b.Grow(len(p)*2 + 2)
	b.WriteByte('^')

	depth := 0
	for i := 0; i < len(p); {
		c := p[i]
		switch c {
		case '*':
			j := i
			for j < len(p) && p[j] == '*' {
				j++
			}
			segStart := i == 0 || p[i-1] == '/'
			segEnd := j == len(p) || p[j] == '/'
			if j-i >= 2 && segStart && segEnd {
				b.WriteString("(?:[^/]*(?:/|$))*")
				if j < len(p) {
					j++
				}
			} else {
				b.WriteString("[^/]*")
			}
			i = j
			continue
		case '?':
			b.WriteByte('.')
		case '[', ']':
			if literal {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		case '{':
			if literal {
				b.WriteString(`\{`)
			} else {
				depth++
				b.WriteString("(?:")
			}
		case '}':
			if depth > 0 && !literal {
				depth--
				b.WriteByte(')')
			} else {
				b.WriteString(`\}`)
			}
		case ',':
			if depth > 0 && !literal {
				b.WriteByte('|')
			} else {
				b.WriteByte(',')
			}
		case '\\', '/', '$', '^', '+', '.', '(', ')', '=', '!', '|':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteString(regexp.QuoteMeta(p[i : i+1]))
		}
		i++
	}

	b.WriteByte('$')
	return b.String()
}

package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

// compilePattern turns a normalized gitignore pattern into its regular
// expression. A pattern whose character classes do not compile is retried
// with every '[' taken literally.
func compilePattern(p string, anchored, dirOnly, negate bool) (*regexp.Regexp, error) {
	prefix, suffix := affixes(anchored, dirOnly, negate)

	re, err := regexp.Compile(prefix + translate(p, true) + suffix)
	if err == nil {
		return re, nil
	}
	re, err2 := regexp.Compile(prefix + translate(p, false) + suffix)
	if err2 != nil {
		return nil, fmt.Errorf("ignore: cannot compile pattern %q: %w", p, err)
	}
	return re, nil
}

// affixes returns the anchoring prefix and the terminating suffix.
// A negated directory-only rule only re-includes paths that carry a
// trailing slash, while a positive one also matches the bare directory
// name and anything below it.
func affixes(anchored, dirOnly, negate bool) (prefix, suffix string) {
	prefix = "(^|/)"
	if anchored {
		prefix = "^"
	}
	switch {
	case !dirOnly:
		suffix = "$"
	case negate:
		suffix = "/$"
	default:
		suffix = "($|/)"
	}
	return prefix, suffix
}

// translate converts the body of a gitignore pattern to regex syntax.
// classes controls whether [...] is treated as a character class.
func translate(p string, classes bool) string {
	var b strings.Builder
	b.Grow(len(p) * 2)

	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == '*' && strings.HasPrefix(p[i:], "**") && (i == 0 || p[i-1] == '/'):
			if i+2 < len(p) && p[i+2] == '/' {
				b.WriteString("(.*/)?")
				i += 3
			} else {
				b.WriteString(".*")
				i += 2
			}
		case c == '*':
			b.WriteString("[^/]*")
			i++
		case c == '?':
			b.WriteString("[^/]")
			i++
		case c == '[' && classes:
			if class, n, ok := translateClass(p[i:]); ok {
				b.WriteString(class)
				i += n
			} else {
				b.WriteString(`\[`)
				i++
			}
		case c == '\\' && i+1 < len(p):
			b.WriteString(regexp.QuoteMeta(p[i+1 : i+2]))
			i += 2
		default:
			b.WriteString(regexp.QuoteMeta(p[i : i+1]))
			i++
		}
	}
	return b.String()
}

// translateClass translates a bracket expression at the start of s.
// It returns the regex class, the number of bytes consumed and false when
// the expression is unterminated or empty once '/' is removed.
func translateClass(s string) (string, int, bool) {
	j := 1
	negated := false
	if j < len(s) && (s[j] == '!' || s[j] == '^') {
		negated = true
		j++
	}
	start := j
	if j < len(s) && s[j] == ']' {
		j++
	}
	for j < len(s) && s[j] != ']' {
		if s[j] == '\\' && j+1 < len(s) {
			j++
		}
		j++
	}
	if j >= len(s) {
		return "", 0, false
	}
	body := s[start:j]

	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteString("^/")
	}
	members := 0
	for k := 0; k < len(body); k++ {
		c := body[k]
		switch {
		case c == '/':
			continue
		case c == '\\' && k+1 < len(body):
			k++
			writeClassLiteral(&b, body[k])
		case c == '-' && k > 0 && k+1 < len(body):
			b.WriteByte('-')
		default:
			writeClassLiteral(&b, c)
		}
		members++
	}
	if members == 0 {
		return "", 0, false
	}
	b.WriteByte(']')
	return b.String(), j + 1, true
}

func writeClassLiteral(b *strings.Builder, c byte) {
	switch c {
	case '\\', '[', ']', '^', '-':
		b.WriteByte('\\')
	}
	b.WriteByte(c)
}

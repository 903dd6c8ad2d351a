package ignore

import (
	"bytes"
	"strings"
)

// normalizeContent strips a UTF-8 BOM and turns CRLF and lone CR line ends
// into LF.
func normalizeContent(content []byte) []byte {
	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// isBlankOrComment reports whether a line contributes no rule.
func isBlankOrComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return trimmed == "" || trimmed[0] == '#'
}

// trimTrailingWhitespace drops unescaped trailing spaces and tabs.
// An odd run of backslashes before the first trailing space keeps that
// space and consumes the escaping backslash:
//
//	"foo "    -> "foo"
//	"foo\ "   -> "foo "
//	"foo\\ "  -> "foo\\"
func trimTrailingWhitespace(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	if end == len(line) {
		return line
	}

	bs := 0
	for i := end - 1; i >= 0 && line[i] == '\\'; i-- {
		bs++
	}
	if bs%2 == 1 && line[end] == ' ' {
		return line[:end-1] + " "
	}
	return line[:end]
}

// collapseStars folds runs of '*' into a single '*' unless the run is a
// whole path segment, in which case it becomes "**".
func collapseStars(p string) string {
	if !strings.Contains(p, "**") {
		return p
	}

	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); {
		c := p[i]
		if c == '\\' && i+1 < len(p) {
			b.WriteByte(c)
			b.WriteByte(p[i+1])
			i += 2
			continue
		}
		if c != '*' {
			b.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(p) && p[j] == '*' {
			j++
		}
		segStart := i == 0 || p[i-1] == '/'
		segEnd := j == len(p) || p[j] == '/'
		if j-i >= 2 && segStart && segEnd {
			b.WriteString("**")
		} else {
			b.WriteByte('*')
		}
		i = j
	}
	return b.String()
}

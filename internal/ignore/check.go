package ignore

import (
	"os"
	"path/filepath"
)

// Match reports whether the absolute path is ignored by s. isDir tells
// whether the path names a directory.
//
// Without negations the first matching rule is enough. Otherwise rules
// are scanned from last to first and the first hit decides.
func (s *Spec) Match(path string, isDir bool) bool {
	if s == nil || len(s.rules) == 0 {
		return false
	}
	path = filepath.Clean(path)

	if !s.negation {
		for _, r := range s.rules {
			if r.match(path, isDir, s.cache) {
				return true
			}
		}
		return false
	}

	for i := len(s.rules) - 1; i >= 0; i-- {
		r := s.rules[i]
		if r.match(path, isDir, s.cache) {
			return !r.negate
		}
	}
	return false
}

// Matches is Match with the directory bit read from the filesystem.
// Symlinks are not followed; a path that cannot be stat'ed is treated as
// a file.
func (s *Spec) Matches(path string) bool {
	return s.Match(path, isDirNoFollow(path))
}

// Explain returns the rule that decides path, scanning from the last rule
// regardless of whether s holds negations. The decision always equals
// Match.
func (s *Spec) Explain(path string, isDir bool) MatchResult {
	if s == nil {
		return MatchResult{}
	}
	path = filepath.Clean(path)
	for i := len(s.rules) - 1; i >= 0; i-- {
		r := s.rules[i]
		if r.match(path, isDir, s.cache) {
			return MatchResult{Rule: r, Matched: true, Ignored: !r.negate}
		}
	}
	return MatchResult{}
}

func isDirNoFollow(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.IsDir()
}

// Package filter applies the post-walk selection of files: include and
// exclude globs, an extension accept list and a size limit.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/robotfiles/internal/glob"
	"github.com/bethropolis/robotfiles/internal/walker"
)

// Options describes a Filter. Zero values disable each check.
type Options struct {
	Include    []string // if set, a file must match one of these
	Exclude    []string
	Extensions []string // accepted extensions, with or without the dot
	MaxSize    int64    // bytes
}

// Filter decides whether a walked file is kept.
type Filter struct {
	include glob.List
	exclude glob.List
	exts    map[string]struct{}
	maxSize int64
}

// New compiles opts.
func New(opts Options) (*Filter, error) {
	include, err := glob.NewList(opts.Include)
	if err != nil {
		return nil, fmt.Errorf("filter: include patterns: %w", err)
	}
	exclude, err := glob.NewList(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("filter: exclude patterns: %w", err)
	}

	f := &Filter{include: include, exclude: exclude, maxSize: opts.MaxSize}
	if exts := NormalizeExtensions(opts.Extensions); len(exts) > 0 {
		f.exts = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			f.exts[ext] = struct{}{}
		}
	}
	return f, nil
}

// NormalizeExtensions lower-cases and de-dots every entry. Entries may
// themselves be comma-separated lists. The result is sorted and unique.
func NormalizeExtensions(list []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, entry := range list {
		for _, ext := range strings.Split(entry, ",") {
			clean := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if clean == "" {
				continue
			}
			if _, ok := seen[clean]; ok {
				continue
			}
			seen[clean] = struct{}{}
			out = append(out, clean)
		}
	}
	sort.Strings(out)
	return out
}

// Active reports whether any check is configured.
func (f *Filter) Active() bool {
	return f != nil && (len(f.include) > 0 || len(f.exclude) > 0 || len(f.exts) > 0 || f.maxSize > 0)
}

// Extensions returns the accepted extensions, sorted.
func (f *Filter) Extensions() []string {
	out := make([]string, 0, len(f.exts))
	for ext := range f.exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Accept reports whether the file at path, found under root, is kept. When
// it is not, the reason says which check dropped it. A nil Filter keeps
// everything.
func (f *Filter) Accept(root, path string) (bool, walker.SkippedReason) {
	if f == nil {
		return true, ""
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if g := f.exclude.Match(rel, false); g != nil {
		return false, walker.ReasonExcludedPattern
	}
	if len(f.include) > 0 && f.include.Match(rel, false) == nil {
		return false, walker.ReasonNotIncluded
	}
	if len(f.exts) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := f.exts[ext]; !ok {
			return false, walker.ReasonFilteredExtension
		}
	}
	if f.maxSize > 0 {
		fi, err := os.Lstat(path)
		if err != nil {
			return false, walker.ReasonSkippedInfoError
		}
		if !fi.Mode().IsRegular() {
			return false, walker.ReasonSkippedNotRegular
		}
		if fi.Size() > f.maxSize {
			return false, walker.ReasonSkippedSizeLimit
		}
	}
	return true, ""
}

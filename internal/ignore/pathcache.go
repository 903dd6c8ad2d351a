package ignore

import (
	"path/filepath"
	"strings"
	"sync"
)

type relKey struct {
	path string
	base string
}

type relEntry struct {
	rel    string
	inside bool
}

// pathCache memoizes relative-path and slash conversions for one Spec.
// Lookups are not atomic with stores: two goroutines missing on the same
// key both compute the value and the later store wins. Both values are
// equal, so callers cannot tell.
//
// A nil *pathCache computes every value without caching.
type pathCache struct {
	rels   sync.Map // relKey -> relEntry
	slashs sync.Map // string -> string
}

func newPathCache() *pathCache {
	return &pathCache{}
}

// rel returns path relative to base in slash form, and false when path is
// not inside base.
func (c *pathCache) rel(path, base string) (string, bool) {
	if c == nil {
		rel, inside := relativize(path, base)
		return filepath.ToSlash(rel), inside
	}
	key := relKey{path: path, base: base}
	if v, ok := c.rels.Load(key); ok {
		e := v.(relEntry)
		return e.rel, e.inside
	}

	rel, inside := relativize(path, base)
	if inside {
		rel = c.slash(rel)
	}
	c.rels.Store(key, relEntry{rel: rel, inside: inside})
	return rel, inside
}

// slash returns the forward-slash form of p.
func (c *pathCache) slash(p string) string {
	if c == nil || filepath.Separator == '/' {
		return filepath.ToSlash(p)
	}
	if v, ok := c.slashs.Load(p); ok {
		return v.(string)
	}
	s := filepath.ToSlash(p)
	c.slashs.Store(p, s)
	return s
}

func relativize(path, base string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

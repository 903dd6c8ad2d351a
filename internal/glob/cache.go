package glob

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheSize bounds the number of compiled expressions kept process-wide.
const CacheSize = 256

// regexCache maps a pattern as given to New to its compiled expression.
// The cache locks internally; it is read-mostly once warm.
var regexCache = mustCache(CacheSize)

func mustCache(size int) *lru.Cache[string, *regexp.Regexp] {
	c, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		panic(err)
	}
	return c
}

// CachedPatterns returns the number of compiled expressions currently held.
func CachedPatterns() int {
	return regexCache.Len()
}

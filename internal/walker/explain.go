package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/robotfiles/internal/ignore"
)

// ErrOutsideRoot is returned by Explain for paths not under the root.
var ErrOutsideRoot = errors.New("walker: path is outside the root")

// Explanation tells whether a walk from the root would reach a path and,
// if not, what stops it.
type Explanation struct {
	Path  string // relative to the root, slash-separated
	IsDir bool

	// Hidden is the entry, the path itself or an ancestor, dropped by the
	// hidden policy.
	Hidden string
	// Ancestor is the directory whose exclusion hides the path.
	Ancestor string
	// Result is the rule decision for Ancestor when set, otherwise for the
	// path itself.
	Result ignore.MatchResult
}

// Ignored reports whether the walk would not yield the path.
func (e Explanation) Ignored() bool {
	return e.Hidden != "" || e.Ancestor != "" || e.Result.Ignored
}

// Reason is a one-line account of the decision.
func (e Explanation) Reason() string {
	switch {
	case e.Hidden != "" && e.Hidden != e.Path:
		return fmt.Sprintf("inside hidden directory %s", e.Hidden)
	case e.Hidden != "":
		return "hidden"
	case e.Ancestor != "":
		return fmt.Sprintf("inside %s, %s", e.Ancestor, e.Result)
	}
	return e.Result.String()
}

// Explain replays the walk's decisions along the directories leading from
// rootDir to path: the hidden policy, then the rules composed in each
// directory. A relative path is taken from the working directory. The path
// need not exist; a missing path is treated as a file.
func Explain(rootDir, path string, opts ...Option) (Explanation, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	root, err := resolveRoot(rootDir)
	if err != nil {
		return Explanation{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Explanation{}, fmt.Errorf("walker: failed to get absolute path for '%s': %w", path, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Explanation{}, fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}

	e := Explanation{Path: filepath.ToSlash(rel)}
	if fi, err := os.Lstat(abs); err == nil {
		e.IsDir = fi.IsDir()
	}
	if rel == "." {
		return e, nil
	}

	spec := options.ParentSpec
	if spec == nil {
		spec, err = ignore.DefaultSpec(root, ignore.WithLogger(options.Logger))
		if err != nil {
			return Explanation{}, fmt.Errorf("walker: building default rules: %w", err)
		}
	}
	names := options.IgnoreFiles
	compose := func(dir string) {
		var cerr error
		spec, names, cerr = ignore.Compose(dir, spec, names, ignore.WithLogger(options.Logger))
		if cerr != nil {
			options.Logger.Warn("walker: ignoring unreadable ignore file in %s: %v", dir, cerr)
		}
	}

	compose(root)
	dir := root
	parts := strings.Split(rel, string(filepath.Separator))
	for i, name := range parts {
		cur := filepath.Join(dir, name)
		last := i == len(parts)-1
		isDir := !last || e.IsDir
		curRel := filepath.ToSlash(filepath.Join(parts[:i+1]...))

		if !options.IncludeHidden && isHidden(cur, name) {
			e.Hidden = curRel
			return e, nil
		}
		res := spec.Explain(cur, isDir)
		if last {
			e.Result = res
			return e, nil
		}
		if res.Ignored {
			e.Ancestor = curRel
			e.Result = res
			return e, nil
		}
		compose(cur)
		dir = cur
	}
	return e, nil
}

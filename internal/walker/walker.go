package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bethropolis/robotfiles/internal/ignore"
)

var (
	// ErrEmptyRoot is returned when no root directory is given.
	ErrEmptyRoot = errors.New("walker: empty root directory")
	// ErrNotDirectory is returned when the root is not a directory.
	ErrNotDirectory = errors.New("walker: root is not a directory")
)

// IterFiles validates rootDir and returns a lazy sequence of the absolute
// paths of every regular file under it that passes the hidden policy and
// the ignore rules in effect for its directory.
//
// Entries are produced in the order the filesystem lists them, a
// directory's subtree before the parent continues. Nothing is read until
// the sequence is ranged over, and breaking out of the loop stops the walk.
// Errors below the root are logged, tracked and skipped.
func IterFiles(rootDir string, opts ...Option) (iter.Seq[string], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	root, err := resolveRoot(rootDir)
	if err != nil {
		return nil, err
	}

	parent := options.ParentSpec
	if parent == nil {
		parent, err = ignore.DefaultSpec(root, ignore.WithLogger(options.Logger))
		if err != nil {
			return nil, fmt.Errorf("walker: building default rules: %w", err)
		}
	}

	return func(yield func(string) bool) {
		w := &walk{root: root, opts: options, yield: yield}
		options.Logger.Debug("walker: starting at %s (hidden=%v, ignore files=%v)",
			root, options.IncludeHidden, options.IgnoreFiles)
		w.dir(root, parent, options.IgnoreFiles)
		options.Logger.Debug("walker: done, %d files yielded, %d dirs seen", w.stats.YieldedFiles, w.stats.TotalDirs)
	}, nil
}

// Walk calls fn for every file IterFiles yields. It stops at the first
// error fn returns and reports it, or the context's error if the walk was
// cancelled.
func Walk(rootDir string, fn func(path string) error, opts ...Option) error {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	files, err := IterFiles(rootDir, opts...)
	if err != nil {
		return err
	}
	for path := range files {
		if err := fn(path); err != nil {
			return err
		}
	}
	return options.Context.Err()
}

func resolveRoot(rootDir string) (string, error) {
	if rootDir == "" {
		return "", ErrEmptyRoot
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("walker: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return root, nil
}

// walk is the state of one iteration over the tree.
type walk struct {
	root  string
	opts  WalkOptions
	yield func(string) bool
	stats ProgressStats
}

// dir walks one directory with the inherited spec. It returns false once
// the consumer stops or the context is done.
func (w *walk) dir(dir string, inherited *ignore.Spec, names []string) bool {
	log := w.opts.Logger
	w.stats.TotalDirs++

	spec, names, err := ignore.Compose(dir, inherited, names, ignore.WithLogger(log))
	if err != nil {
		log.Warn("walker: ignoring unreadable ignore file in %s: %v", w.rel(dir), err)
		w.opts.Tracker.Track(w.rel(filepath.Join(dir, names[0])), ReasonSkippedIgnoreFile, false)
	}

	entries, err := readDirUnsorted(dir)
	if err != nil {
		reason := ReasonSkippedWalkError
		if errors.Is(err, fs.ErrPermission) {
			reason = ReasonSkippedPermError
		}
		log.Warn("walker: cannot read %s: %v", w.rel(dir), err)
		w.opts.Tracker.Track(w.rel(dir), reason, true)
		w.stats.SkippedDirs++
		if len(entries) == 0 {
			return true
		}
	}

	w.stats.CurrentDir = w.rel(dir)
	if w.opts.ProgressFn != nil {
		w.opts.ProgressFn(w.stats)
	}

	for _, e := range entries {
		if w.opts.Context.Err() != nil {
			log.Debug("walker: context done, stopping: %v", w.opts.Context.Err())
			return false
		}
		if !w.entry(dir, e, spec, names) {
			return false
		}
	}
	return true
}

// entry decides one directory entry. It returns false when the walk must
// stop.
func (w *walk) entry(dir string, e fs.DirEntry, spec *ignore.Spec, names []string) bool {
	log := w.opts.Logger
	path := filepath.Join(dir, e.Name())
	isDir := e.IsDir()
	if !isDir && e.Type().IsRegular() {
		w.stats.TotalFiles++
	}

	if !w.opts.IncludeHidden && isHidden(path, e.Name()) {
		log.Debug("walker: skipping hidden %s", w.rel(path))
		w.skip(path, ReasonIgnoredHidden, isDir)
		return true
	}

	if spec.Match(path, isDir) {
		log.Debug("walker: %s ignored by rules", w.rel(path))
		w.skip(path, ReasonIgnoredRule, isDir)
		return true
	}

	switch {
	case isDir:
		return w.dir(path, spec, names)
	case e.Type().IsRegular():
		w.stats.YieldedFiles++
		return w.yield(path)
	default:
		log.Debug("walker: skipping %s: not a regular file (%s)", w.rel(path), e.Type())
		w.opts.Tracker.Track(w.rel(path), ReasonSkippedNotRegular, false)
		return true
	}
}

func (w *walk) skip(path string, reason SkippedReason, isDir bool) {
	if isDir {
		w.stats.SkippedDirs++
	} else {
		w.stats.SkippedFiles++
	}
	w.opts.Tracker.Track(w.rel(path), reason, isDir)
}

func (w *walk) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// readDirUnsorted lists dir in the order the filesystem returns entries.
// os.ReadDir would sort them by name. Entries read before an error are
// returned with it.
func readDirUnsorted(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

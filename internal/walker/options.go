// Package walker handles directory traversal and file discovery
package walker

import (
	"context"

	"github.com/bethropolis/robotfiles/internal/ignore"
	"github.com/bethropolis/robotfiles/internal/utils"
)

// DefaultIgnoreFiles are looked for in every directory, first match wins:
// the project ignore file, then the VCS one.
var DefaultIgnoreFiles = []string{".robotignore", ".gitignore"}

// WalkOptions configures the behavior of IterFiles and Walk
type WalkOptions struct {
	Logger        utils.Logger
	Context       context.Context
	IgnoreFiles   []string
	IncludeHidden bool
	ParentSpec    *ignore.Spec     // nil means ignore.DefaultSpec at the root
	Tracker       *SkippedTracker  // nil disables skip tracking
	ProgressFn    ProgressCallback // called after each directory is read
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles   int64  // Regular files seen
	YieldedFiles int64  // Files handed to the consumer
	SkippedFiles int64  // Files dropped by the hidden policy or a rule
	TotalDirs    int64  // Directories seen, the root included
	SkippedDirs  int64  // Directories not descended into
	CurrentDir   string // Directory just read, relative to the root
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      utils.NoopLogger{},
		Context:     context.Background(),
		IgnoreFiles: DefaultIgnoreFiles,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithVerbose routes every walker message to fn.
func WithVerbose(fn func(level, format string, args ...any)) Option {
	return func(opts *WalkOptions) {
		if fn != nil {
			opts.Logger = utils.FuncLogger(fn)
		}
	}
}

// WithContext stops the walk once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithIgnoreFiles sets the ignore file names to look for, in priority
// order. An empty list disables ignore files.
func WithIgnoreFiles(names ...string) Option {
	return func(opts *WalkOptions) {
		opts.IgnoreFiles = append([]string(nil), names...)
	}
}

// WithIncludeHidden enables or disables walking hidden entries
func WithIncludeHidden(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.IncludeHidden = enabled
	}
}

// WithParentSpec sets the rules inherited by the root directory. It
// replaces the built-in defaults.
func WithParentSpec(spec *ignore.Spec) Option {
	return func(opts *WalkOptions) {
		opts.ParentSpec = spec
	}
}

// WithTracker records every skipped entry in t.
func WithTracker(t *SkippedTracker) Option {
	return func(opts *WalkOptions) {
		opts.Tracker = t
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}

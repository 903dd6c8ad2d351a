// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bethropolis/robotfiles/internal/filter"
	"github.com/bethropolis/robotfiles/internal/ignore"
	"github.com/bethropolis/robotfiles/internal/utils"
	"github.com/bethropolis/robotfiles/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...any)

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir         string
	IgnoreFiles     []string
	DefaultRules    []string
	IgnorePatterns  []string
	IncludeHidden   bool
	IncludePatterns []string
	ExcludePatterns []string
	Extensions      []string
	MaxFileSize     int64 // bytes
	ShowProgress    bool
	ProgressOut     io.Writer
	Context         context.Context
	Tracker         *walker.SkippedTracker
	Logger          utils.Logger
}

// Plan is everything needed to run a discovery walk.
type Plan struct {
	Root    string
	Rules   *ignore.Spec // rules the root inherits
	Options []walker.Option
	Filter  *filter.Filter
}

// ConfigureWalker builds the root rules, the walker options and the
// post-walk filter described by cfg.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*Plan, error) {
	if cfg.RootDir == "" {
		return nil, walker.ErrEmptyRoot
	}
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory path '%s': %w", cfg.RootDir, err)
	}
	log := cfg.Logger
	if log == nil {
		log = utils.NoopLogger{}
	}

	// --- Root rules ---
	defaults, err := ignore.FromPatterns(cfg.DefaultRules, root, ignore.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("error initializing default rules: %w", err)
	}
	extra, err := ignore.FromPatterns(cfg.IgnorePatterns, root, ignore.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("error initializing ignore patterns: %w", err)
	}
	if extra.Len() > 0 {
		infoLog("Using extra ignore patterns: %v", extra.Patterns())
	}
	rules := ignore.Concat(defaults, extra)

	// --- Post-walk filter ---
	flt, err := filter.New(filter.Options{
		Include:    cfg.IncludePatterns,
		Exclude:    cfg.ExcludePatterns,
		Extensions: cfg.Extensions,
		MaxSize:    cfg.MaxFileSize,
	})
	if err != nil {
		return nil, err
	}
	if exts := flt.Extensions(); len(exts) > 0 {
		infoLog("Filtering enabled. Only including extensions: .%s", strings.Join(exts, ", ."))
	}
	if cfg.MaxFileSize > 0 {
		infoLog("Ignoring files larger than %d bytes.", cfg.MaxFileSize)
	}

	if cfg.IncludeHidden {
		infoLog("Including hidden files/directories.")
	} else {
		infoLog("Ignoring hidden files/directories.")
	}
	if len(cfg.IgnoreFiles) > 0 {
		infoLog("Looking for ignore files: %s", strings.Join(cfg.IgnoreFiles, ", "))
	} else {
		infoLog("Ignore files disabled.")
	}

	// --- Walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(log),
		walker.WithIgnoreFiles(cfg.IgnoreFiles...),
		walker.WithIncludeHidden(cfg.IncludeHidden),
		walker.WithParentSpec(rules),
		walker.WithTracker(cfg.Tracker),
	}
	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}
	if cfg.ShowProgress && cfg.ProgressOut != nil {
		log.Debug("Progress display enabled")
		walkOptions = append(walkOptions, walker.WithProgress(progressPrinter(cfg.ProgressOut)))
	}

	return &Plan{Root: root, Rules: rules, Options: walkOptions, Filter: flt}, nil
}

// progressPrinter rewrites one status line on out for every directory read.
func progressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		dir := stats.CurrentDir
		if len(dir) > 40 {
			dir = "..." + dir[len(dir)-37:]
		}
		fmt.Fprintf(out, "\rScanning: %-40s | Files: %d/%d | Dirs: %d",
			dir, stats.YieldedFiles, stats.TotalFiles, stats.TotalDirs)
	}
}

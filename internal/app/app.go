package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/robotfiles/internal/config"
	"github.com/bethropolis/robotfiles/internal/logger"
	"github.com/bethropolis/robotfiles/internal/printer"
	"github.com/bethropolis/robotfiles/internal/setup"
	"github.com/bethropolis/robotfiles/internal/summary"
	"github.com/bethropolis/robotfiles/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	out    io.Writer
	errOut io.Writer
	file   *os.File // set when writing to --output
}

// New creates a new App writing results to stdout, or to the configured
// output file, and logs to stderr.
func New(cfg *config.Config, stdout, stderr io.Writer) (*App, error) {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	a := &App{
		cfg:    cfg,
		log:    logger.New(stderr, level, cfg.UseColors),
		out:    stdout,
		errOut: stderr,
	}

	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		a.file = file
		a.out = file
	}
	return a, nil
}

// Close releases the output file, if any.
func (a *App) Close() error {
	if a.file == nil {
		return nil
	}
	return a.file.Close()
}

// Logger returns the application logger.
func (a *App) Logger() *logger.Logger { return a.log }

func (a *App) plan(ctx context.Context, tracker *walker.SkippedTracker) (*setup.Plan, error) {
	return setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:         a.cfg.RootDir,
		IgnoreFiles:     a.cfg.IgnoreFiles,
		DefaultRules:    a.cfg.DefaultRules,
		IgnorePatterns:  a.cfg.IgnorePatterns,
		IncludeHidden:   a.cfg.IncludeHidden,
		IncludePatterns: a.cfg.IncludePatterns,
		ExcludePatterns: a.cfg.ExcludePatterns,
		Extensions:      a.cfg.Extensions,
		MaxFileSize:     a.cfg.MaxFileSize(),
		ShowProgress:    a.cfg.ShowProgress,
		ProgressOut:     a.errOut,
		Context:         ctx,
		Tracker:         tracker,
		Logger:          a.log,
	}, a.log.Info)
}

// Run lists every discovered file under the root directory.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.log.Debug("Color output: %v", a.cfg.UseColors)
	a.log.Debug("Directory: %s", a.cfg.RootDir)
	if a.cfg.ConfigFile != "" {
		a.log.Debug("Profile: %s", a.cfg.ConfigFile)
	}

	tracker := walker.NewSkippedTracker(64)
	plan, err := a.plan(ctx, tracker)
	if err != nil {
		return err
	}

	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	p := printer.New().WithOutput(a.out).WithFormat(format).WithColors(a.cfg.UseColors && format == printer.FormatPlain)

	a.log.Info("Scanning directory: %s", plan.Root)
	err = walker.Walk(plan.Root, func(path string) error {
		rel := relSlash(plan.Root, path)
		if ok, reason := plan.Filter.Accept(plan.Root, path); !ok {
			a.log.Debug("Filtered %s: %s", rel, reason)
			tracker.Track(rel, reason, false)
			return nil
		}
		return p.PrintPath(rel)
	}, plan.Options...)
	if a.cfg.ShowProgress {
		fmt.Fprintln(a.errOut)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timeout of %v reached: %w", a.cfg.Timeout, err)
		}
		return fmt.Errorf("directory walk failed: %w", err)
	}
	if err := p.Finalize(); err != nil {
		return err
	}

	summary.DisplayResults(a.log, p.Count(), time.Since(startTime))
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, tracker.Items(), a.errOut)
	}
	return nil
}

// Check prints, for every path, whether the walk would list it and which
// rule or filter decided.
func (a *App) Check(ctx context.Context, paths []string) error {
	plan, err := a.plan(ctx, nil)
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range paths {
		e, err := walker.Explain(plan.Root, path, plan.Options...)
		if err != nil {
			a.log.Error("Cannot check %s: %v", path, err)
			errs = append(errs, err)
			continue
		}
		if err := printer.PrintExplanation(a.out, e, a.cfg.UseColors); err != nil {
			return err
		}
		if e.Ignored() || e.IsDir {
			continue
		}
		abs := filepath.Join(plan.Root, filepath.FromSlash(e.Path))
		if ok, reason := plan.Filter.Accept(plan.Root, abs); !ok {
			fmt.Fprintf(a.out, "  filtered: %s\n", reason)
		}
	}
	return errors.Join(errs...)
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/bethropolis/robotfiles/internal/walker"
)

// Format selects how paths are written.
type Format int

const (
	FormatPlain Format = iota
	FormatJSON
	FormatMarkdown
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "plain":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return FormatPlain, fmt.Errorf("printer: unknown format %q", name)
}

// Printer writes discovered paths to the configured output destination
type Printer struct {
	mu      sync.Mutex
	output  io.Writer
	count   atomic.Int64
	format  Format
	started bool
	path    *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	p := &Printer{output: os.Stdout, path: color.New(color.FgCyan, color.Bold)}
	return p
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored paths. Only plain output is
// colored.
func (p *Printer) WithColors(enabled bool) *Printer {
	if enabled {
		p.path.EnableColor()
	} else {
		p.path.DisableColor()
	}
	return p
}

// WithFormat sets the output format
func (p *Printer) WithFormat(f Format) *Printer {
	p.format = f
	return p
}

// Entry is one file in JSON output.
type Entry struct {
	Path string `json:"path"`
}

// PrintPath writes one discovered file, given relative to the root.
func (p *Printer) PrintPath(rel string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count.Add(1)

	switch p.format {
	case FormatJSON:
		sep := ",\n"
		if !p.started {
			sep = "[\n"
			p.started = true
		}
		data, err := json.Marshal(Entry{Path: rel})
		if err != nil {
			return fmt.Errorf("printer: marshaling %s: %w", rel, err)
		}
		_, err = fmt.Fprintf(p.output, "%s  %s", sep, data)
		return err
	case FormatMarkdown:
		if !p.started {
			p.started = true
			if _, err := fmt.Fprint(p.output, "## Files\n\n"); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(p.output, "- `%s`\n", rel)
		return err
	default:
		_, err := fmt.Fprintln(p.output, p.path.Sprint(rel))
		return err
	}
}

// Finalize completes any pending operations (like closing the JSON array).
func (p *Printer) Finalize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.format != FormatJSON {
		return nil
	}
	if !p.started {
		_, err := fmt.Fprint(p.output, "[]\n")
		return err
	}
	_, err := fmt.Fprint(p.output, "\n]\n")
	return err
}

// Count returns the number of paths printed
func (p *Printer) Count() int64 {
	return p.count.Load()
}

// PrintExplanation writes the ignore decision for one checked path.
func PrintExplanation(w io.Writer, e walker.Explanation, useColors bool) error {
	verdict := color.New(color.FgGreen)
	if e.Ignored() {
		verdict = color.New(color.FgRed)
	}
	if useColors {
		verdict.EnableColor()
	} else {
		verdict.DisableColor()
	}

	state := "included"
	if e.Ignored() {
		state = "ignored"
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s)\n", e.Path, verdict.Sprint(state), e.Reason())
	return err
}

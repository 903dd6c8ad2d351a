package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/robotfiles/internal/ignore"
	"github.com/bethropolis/robotfiles/internal/walker"
)

// ProfileName is the profile file looked for in the root directory when
// --config is not given.
const ProfileName = "robotfiles.yaml"

// Output formats.
const (
	FormatPlain    = "plain"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir    string
	ConfigFile string

	// Discovery settings, loadable from the profile
	IgnoreFiles     []string
	DefaultRules    []string
	IgnorePatterns  []string
	IncludePatterns []string
	ExcludePatterns []string
	Extensions      []string
	IncludeHidden   bool
	MaxFileSizeMB   int64

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	OutputFile  string
	ShowSkipped bool

	// Processing settings
	ShowProgress bool
	Timeout      time.Duration

	// Output format
	Format string
}

// profile mirrors the YAML file. Pointers tell absent keys from zero values.
type profile struct {
	IgnoreFiles     *[]string `yaml:"ignore_files"`
	DefaultRules    *[]string `yaml:"default_rules"`
	IgnorePatterns  []string  `yaml:"ignore_patterns"`
	IncludePatterns []string  `yaml:"include_patterns"`
	ExcludePatterns []string  `yaml:"exclude_patterns"`
	Extensions      []string  `yaml:"extensions"`
	IncludeHidden   *bool     `yaml:"include_hidden"`
	MaxSizeMB       *int64    `yaml:"max_size_mb"`
}

// DefaultConfig returns the configuration used when neither a profile nor
// flags say otherwise.
func DefaultConfig() *Config {
	return &Config{
		RootDir:      ".",
		IgnoreFiles:  append([]string(nil), walker.DefaultIgnoreFiles...),
		DefaultRules: append([]string(nil), ignore.DefaultPatterns...),
		LogLevel:     "info",
		Format:       FormatPlain,
	}
}

// Load reads the profile at path on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if p.IgnoreFiles != nil {
		c.IgnoreFiles = *p.IgnoreFiles
	}
	if p.DefaultRules != nil {
		c.DefaultRules = *p.DefaultRules
	}
	c.IgnorePatterns = append(c.IgnorePatterns, p.IgnorePatterns...)
	c.IncludePatterns = append(c.IncludePatterns, p.IncludePatterns...)
	c.ExcludePatterns = append(c.ExcludePatterns, p.ExcludePatterns...)
	c.Extensions = append(c.Extensions, p.Extensions...)
	if p.IncludeHidden != nil {
		c.IncludeHidden = *p.IncludeHidden
	}
	if p.MaxSizeMB != nil {
		c.MaxFileSizeMB = *p.MaxSizeMB
	}
	c.ConfigFile = path
	return nil
}

// Validate checks values that flags and profiles cannot constrain.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatPlain, FormatJSON, FormatMarkdown:
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)",
			c.Format, FormatPlain, FormatJSON, FormatMarkdown)
	}
	if c.MaxFileSizeMB < 0 {
		return fmt.Errorf("max size must not be negative, got %d", c.MaxFileSizeMB)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	return nil
}

// MaxFileSize returns the size limit in bytes, 0 for none.
func (c *Config) MaxFileSize() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// Flags holds command-line values until they are applied over a profile.
type Flags struct {
	fs *pflag.FlagSet

	configFile    string
	includeHidden bool
	ignoreFiles   []string
	ignore        []string
	exclude       []string
	include       []string
	extensions    []string
	maxSizeMB     int64
	logLevel      string
	verbose       bool
	quiet         bool
	noColor       bool
	output        string
	format        string
	showSkipped   bool
	progress      bool
	timeout       time.Duration
}

// BindFlags registers every configuration flag on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.configFile, "config", "", "Profile file (default: <dir>/"+ProfileName+")")
	fs.BoolVar(&f.includeHidden, "hidden", false, "Include hidden files and directories")
	fs.StringSliceVar(&f.ignoreFiles, "ignore-file", nil, "Ignore file names to look for, first found wins (default .robotignore,.gitignore)")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "Extra ignore patterns rooted at the directory (gitignore syntax)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "Drop files matching these globs")
	fs.StringSliceVar(&f.include, "include", nil, "Only keep files matching one of these globs")
	fs.StringSliceVar(&f.extensions, "ext", nil, "Only keep files with these extensions (e.g. 'robot,resource')")
	fs.Int64Var(&f.maxSizeMB, "max-size", 0, "Max file size in MB (0 = no limit)")
	fs.StringVar(&f.logLevel, "log-level", "", "Logging level (debug, info, warn, error, none)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only show warnings and errors")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable color output")
	fs.StringVarP(&f.output, "output", "o", "", "Write results to a file instead of stdout")
	fs.StringVar(&f.format, "format", FormatPlain, "Output format (plain, json, markdown)")
	fs.BoolVar(&f.showSkipped, "show-skipped", false, "List skipped files and directories with reasons at the end")
	fs.BoolVar(&f.progress, "progress", false, "Show progress information")
	fs.DurationVar(&f.timeout, "timeout", 0, "Maximum execution time (e.g. '30s', '5m')")
	return f
}

// Resolve loads the profile for rootDir and applies every flag the user set
// on top of it.
func (f *Flags) Resolve(rootDir string) (*Config, error) {
	if rootDir == "" {
		rootDir = "."
	}
	path := f.configFile
	if path == "" {
		path = filepath.Join(rootDir, ProfileName)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.RootDir = rootDir

	changed := f.fs.Changed
	if changed("hidden") {
		cfg.IncludeHidden = f.includeHidden
	}
	if changed("ignore-file") {
		cfg.IgnoreFiles = trimAll(f.ignoreFiles)
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, trimAll(f.ignore)...)
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, trimAll(f.exclude)...)
	cfg.IncludePatterns = append(cfg.IncludePatterns, trimAll(f.include)...)
	cfg.Extensions = append(cfg.Extensions, f.extensions...)
	if changed("max-size") {
		cfg.MaxFileSizeMB = f.maxSizeMB
	}

	cfg.Verbose = f.verbose
	cfg.Quiet = f.quiet
	switch {
	case f.logLevel != "":
		cfg.LogLevel = f.logLevel
	case f.verbose:
		cfg.LogLevel = "debug"
	case f.quiet:
		cfg.LogLevel = "warn"
	}
	cfg.NoColor = f.noColor
	cfg.OutputFile = f.output
	cfg.Format = strings.ToLower(f.format)
	cfg.ShowSkipped = f.showSkipped
	cfg.ShowProgress = f.progress
	cfg.Timeout = f.timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.UseColors = DetectColors(cfg.NoColor, cfg.OutputFile)
	return cfg, nil
}

// DetectColors reports whether colored output should be used: stderr is a
// terminal, output goes to the terminal and the user did not opt out.
func DetectColors(noColor bool, outputFile string) bool {
	if noColor || outputFile != "" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func trimAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

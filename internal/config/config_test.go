package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ProfileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ProfileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, []string{".robotignore", ".gitignore"}, cfg.IgnoreFiles)
	assert.Equal(t, []string{".git/", ".svn/", "CVS/"}, cfg.DefaultRules)
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, t.TempDir(), `
ignore_files: [.robotignore]
default_rules: []
ignore_patterns:
  - results/
include_patterns: ["tests/**"]
exclude_patterns: ["**/draft_*"]
extensions: [robot, resource]
include_hidden: true
max_size_mb: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".robotignore"}, cfg.IgnoreFiles)
	assert.Empty(t, cfg.DefaultRules)
	assert.Equal(t, []string{"results/"}, cfg.IgnorePatterns)
	assert.Equal(t, []string{"tests/**"}, cfg.IncludePatterns)
	assert.Equal(t, []string{"**/draft_*"}, cfg.ExcludePatterns)
	assert.Equal(t, []string{"robot", "resource"}, cfg.Extensions)
	assert.True(t, cfg.IncludeHidden)
	assert.EqualValues(t, 2, cfg.MaxFileSizeMB)
	assert.EqualValues(t, 2*1024*1024, cfg.MaxFileSize())
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadMalformed(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "ignore_files: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestResolveFlagsOverrideProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "include_hidden: true\nmax_size_mb: 5\nexclude_patterns: [a]\n")

	f := parse(t,
		"--hidden=false",
		"--max-size", "1",
		"--exclude", "b, c",
		"--ignore-file", ".gitignore",
		"--format", "JSON",
		"--timeout", "30s",
		"--no-color",
	)
	cfg, err := f.Resolve(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.RootDir)
	assert.False(t, cfg.IncludeHidden)
	assert.EqualValues(t, 1, cfg.MaxFileSizeMB)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.ExcludePatterns)
	assert.Equal(t, []string{".gitignore"}, cfg.IgnoreFiles)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.UseColors)
}

func TestResolveUnsetFlagsKeepProfile(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "include_hidden: true\nmax_size_mb: 5\n")

	cfg, err := parse(t).Resolve(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeHidden)
	assert.EqualValues(t, 5, cfg.MaxFileSizeMB)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolveEmptyIgnoreFileDisables(t *testing.T) {
	cfg, err := parse(t, "--ignore-file=").Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.IgnoreFiles)
}

func TestResolveLogLevel(t *testing.T) {
	grid := []struct {
		Args []string
		Want string
	}{
		{nil, "info"},
		{[]string{"-v"}, "debug"},
		{[]string{"-q"}, "warn"},
		{[]string{"-v", "--log-level", "error"}, "error"},
	}
	for _, g := range grid {
		cfg, err := parse(t, g.Args...).Resolve(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, g.Want, cfg.LogLevel, "%v", g.Args)
	}
}

func TestResolveExplicitConfig(t *testing.T) {
	other := t.TempDir()
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extensions: [robot]\n"), 0o644))

	cfg, err := parse(t, "--config", path, "--ext", "resource").Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"robot", "resource"}, cfg.Extensions)

	_, err = parse(t, "--config", filepath.Join(other, "missing.yaml")).Resolve(other)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxFileSizeMB = -1
	require.Error(t, cfg.Validate())
}

func TestDetectColorsOptOut(t *testing.T) {
	assert.False(t, DetectColors(true, ""))
	assert.False(t, DetectColors(false, "out.txt"))
}

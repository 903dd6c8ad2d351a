package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/robotfiles/internal/glob"
	"github.com/bethropolis/robotfiles/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{".Robot", "txt, .MD", "", " robot ", ","})
	assert.Equal(t, []string{"md", "robot", "txt"}, got)
	assert.Empty(t, NormalizeExtensions(nil))
}

func TestFilterAccept(t *testing.T) {
	root := t.TempDir()
	write := func(rel string, size int) string {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
		return path
	}
	small := write("suite/a.robot", 10)
	upper := write("suite/B.ROBOT", 10)
	big := write("suite/big.robot", 2048)
	resource := write("resources/common.resource", 10)
	vendored := write("vendor/lib/x.robot", 10)

	f, err := New(Options{
		Include:    []string{"suite/**", "resources/*.{resource,robot}"},
		Exclude:    []string{"**/big.*"},
		Extensions: []string{"robot", ".resource"},
		MaxSize:    1024,
	})
	require.NoError(t, err)
	require.True(t, f.Active())
	assert.Equal(t, []string{"resource", "robot"}, f.Extensions())

	grid := []struct {
		Path   string
		Want   bool
		Reason walker.SkippedReason
	}{
		{small, true, ""},
		{upper, true, ""},
		{resource, true, ""},
		{big, false, walker.ReasonExcludedPattern},
		{vendored, false, walker.ReasonNotIncluded},
		{filepath.Join(root, "suite", "missing.robot"), false, walker.ReasonSkippedInfoError},
	}
	for _, g := range grid {
		ok, reason := f.Accept(root, g.Path)
		assert.Equal(t, g.Want, ok, g.Path)
		assert.Equal(t, g.Reason, reason, g.Path)
	}
}

func TestFilterExtensionAndSize(t *testing.T) {
	root := t.TempDir()
	notes := filepath.Join(root, "notes.txt")
	big := filepath.Join(root, "big.robot")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(big, make([]byte, 100), 0o644))

	f, err := New(Options{Extensions: []string{"robot"}, MaxSize: 50})
	require.NoError(t, err)

	ok, reason := f.Accept(root, notes)
	assert.False(t, ok)
	assert.Equal(t, walker.ReasonFilteredExtension, reason)

	ok, reason = f.Accept(root, big)
	assert.False(t, ok)
	assert.Equal(t, walker.ReasonSkippedSizeLimit, reason)
}

func TestFilterEmpty(t *testing.T) {
	f, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, f.Active())

	ok, _ := f.Accept("/root", "/root/anything")
	assert.True(t, ok)

	var none *Filter
	assert.False(t, none.Active())
	ok, _ = none.Accept("/root", "/root/anything")
	assert.True(t, ok)
}

func TestFilterBadPattern(t *testing.T) {
	_, err := New(Options{Include: []string{"/"}})
	require.ErrorIs(t, err, glob.ErrEmptyPattern)
}

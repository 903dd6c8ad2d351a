package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	root := scenarioTree(t)

	grid := []struct {
		Rel      string
		Ignored  bool
		Hidden   string
		Ancestor string
		Pattern  string
	}{
		{Rel: "a.robot"},
		{Rel: "sub/b.robot"},
		{Rel: "sub/c.tmp", Pattern: "!sub/c.tmp"},
		{Rel: "other.tmp", Ignored: true, Pattern: "*.tmp"},
		{Rel: "node_modules", Ignored: true, Pattern: "node_modules/"},
		{Rel: "node_modules/x.robot", Ignored: true, Ancestor: "node_modules", Pattern: "node_modules/"},
		{Rel: "sub/.hidden.robot", Ignored: true, Hidden: "sub/.hidden.robot"},
		{Rel: ".git/HEAD", Ignored: true, Hidden: ".git"},
	}
	for _, g := range grid {
		e, err := Explain(root, filepath.Join(root, filepath.FromSlash(g.Rel)), WithIgnoreFiles(".gitignore"))
		require.NoError(t, err, g.Rel)
		assert.Equal(t, g.Rel, e.Path)
		assert.Equal(t, g.Ignored, e.Ignored(), "%s: %s", g.Rel, e.Reason())
		assert.Equal(t, g.Hidden, e.Hidden, g.Rel)
		assert.Equal(t, g.Ancestor, e.Ancestor, g.Rel)
		if g.Pattern == "" {
			assert.Nil(t, e.Result.Rule, g.Rel)
		} else if assert.NotNil(t, e.Result.Rule, g.Rel) {
			assert.Equal(t, g.Pattern, e.Result.Rule.Pattern(), g.Rel)
		}
	}
}

func TestExplainAgreesWithWalk(t *testing.T) {
	root := scenarioTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", ".gitignore"), []byte("b.robot\n"), 0o644))

	opts := []Option{WithIgnoreFiles(".gitignore"), WithIncludeHidden(true)}
	yielded := map[string]bool{}
	for _, rel := range relFiles(t, root, opts...) {
		yielded[rel] = true
	}

	for _, rel := range []string{
		".gitignore", "a.robot", "sub/.gitignore", "sub/b.robot", "sub/c.tmp",
		"sub/.hidden.robot", "node_modules/x.robot", ".git/HEAD",
	} {
		e, err := Explain(root, filepath.Join(root, filepath.FromSlash(rel)), opts...)
		require.NoError(t, err)
		assert.Equal(t, yielded[rel], !e.Ignored(), "%s: %s", rel, e.Reason())
	}
}

func TestExplainErrors(t *testing.T) {
	root := scenarioTree(t)
	_, err := Explain(root, filepath.Dir(root))
	require.ErrorIs(t, err, ErrOutsideRoot)

	_, err = Explain("", "x")
	require.ErrorIs(t, err, ErrEmptyRoot)

	e, err := Explain(root, root)
	require.NoError(t, err)
	assert.Equal(t, ".", e.Path)
	assert.False(t, e.Ignored())
}

func TestExplanationReason(t *testing.T) {
	assert.Equal(t, "hidden", Explanation{Path: ".x", Hidden: ".x"}.Reason())
	assert.Equal(t, "inside hidden directory .git", Explanation{Path: ".git/HEAD", Hidden: ".git"}.Reason())
	assert.Equal(t, "no rule matched", Explanation{Path: "a"}.Reason())
}

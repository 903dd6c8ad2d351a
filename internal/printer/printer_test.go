package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/robotfiles/internal/walker"
)

func TestPrintPlain(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false)
	require.NoError(t, p.PrintPath("a.robot"))
	require.NoError(t, p.PrintPath("sub/b.robot"))
	require.NoError(t, p.Finalize())

	assert.Equal(t, "a.robot\nsub/b.robot\n", buf.String())
	assert.EqualValues(t, 2, p.Count())
}

func TestPrintPlainColored(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(true)
	require.NoError(t, p.PrintPath("a.robot"))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "a.robot")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatJSON)
	require.NoError(t, p.PrintPath("a.robot"))
	require.NoError(t, p.PrintPath(`dir/"quoted".robot`))
	require.NoError(t, p.Finalize())

	var got []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []Entry{{Path: "a.robot"}, {Path: `dir/"quoted".robot`}}, got)
}

func TestPrintJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatJSON)
	require.NoError(t, p.Finalize())
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintMarkdown(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatMarkdown)
	require.NoError(t, p.PrintPath("a.robot"))
	require.NoError(t, p.PrintPath("b.robot"))
	require.NoError(t, p.Finalize())
	assert.Equal(t, "## Files\n\n- `a.robot`\n- `b.robot`\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatPlain, "plain": FormatPlain, "json": FormatJSON, "md": FormatMarkdown} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseFormat("yaml")
	require.Error(t, err)
}

func TestPrintExplanation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintExplanation(&buf, walker.Explanation{Path: "x/.cache", Hidden: "x/.cache"}, false))
	require.NoError(t, PrintExplanation(&buf, walker.Explanation{Path: "a.robot"}, false))
	assert.Equal(t, "x/.cache: ignored (hidden)\na.robot: included (no rule matched)\n", buf.String())
}

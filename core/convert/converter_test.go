package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_HeadingAndParagraph(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("# Hello\nWorld")
	require.NoError(t, err)

	assert.Contains(t, got, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, got, "<p>World</p>")
}

func TestConvert_HardWraps(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("line one\nline two")
	require.NoError(t, err)
	assert.Contains(t, got, "line one<br>")

	soft := New(Options{GFM: true})
	got, err = soft.Convert("line one\nline two")
	require.NoError(t, err)
	assert.NotContains(t, got, "<br")
}

func TestConvert_DuplicateHeadingIDs(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("# Intro\n\n# Intro\n\n# Intro")
	require.NoError(t, err)

	assert.Contains(t, got, `id="intro"`)
	assert.Contains(t, got, `id="intro-1"`)
	assert.Contains(t, got, `id="intro-2"`)
}

func TestConvert_Deterministic(t *testing.T) {
	c := New(DefaultOptions())
	src := "# Intro\n\n## Intro\n\nSome \"text\" -- here..."

	first, err := c.Convert(src)
	require.NoError(t, err)
	second, err := c.Convert(src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConvert_Typographer(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert(`"quoted" a -- b --- c...`)
	require.NoError(t, err)

	assert.Contains(t, got, "&ldquo;quoted&rdquo;")
	assert.Contains(t, got, "&ndash;")
	assert.Contains(t, got, "&mdash;")
	assert.Contains(t, got, "&hellip;")
}

func TestConvert_GFM(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~ https://example.com")
	require.NoError(t, err)

	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>1</td>")
	assert.Contains(t, got, "<del>gone</del>")
	assert.Contains(t, got, `<a href="https://example.com">`)
}

func TestConvert_RawHTMLPassesThrough(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.Contains(t, got, "<script>alert(1)</script>")

	safe := New(Options{GFM: true})
	got, err = safe.Convert("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.NotContains(t, got, "<script>")
}

func TestConvert_Empty(t *testing.T) {
	c := New(DefaultOptions())

	got, err := c.Convert("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/mdsafe/core"
)

const fragment = `<h1 id="guide">Guide</h1>
<p>Read the <a href="https://example.com/docs">docs</a> or <a>nothing</a>.</p>
<h2 id="setup">Setup</h2>
<ul>
<li>one</li>
<li>two</li>
</ul>
<pre><code>go run .
</code></pre>
<table><thead><tr><th>k</th><th>v</th></tr></thead><tbody><tr><td>a</td><td>1</td></tr></tbody></table>`

var renderers = []core.Renderer{
	NewHTMLRenderer(),
	NewJSONRenderer(),
	NewPageRenderer(),
	NewMarkdownRenderer(),
	NewPDFRenderer(),
}

func TestExtensions(t *testing.T) {
	var got []string
	for _, r := range renderers {
		got = append(got, r.Extension())
	}
	assert.Equal(t, []string{".html", ".json", ".page.html", ".safe.md", ".pdf"}, got)
}

func TestExtractOutline(t *testing.T) {
	outline, err := ExtractOutline(fragment)
	require.NoError(t, err)

	assert.Equal(t, []core.Heading{
		{Level: 1, Text: "Guide", ID: "guide"},
		{Level: 2, Text: "Setup", ID: "setup"},
	}, outline.Headings)
	assert.Equal(t, []core.Link{{Text: "docs", Href: "https://example.com/docs"}}, outline.Links)
	assert.Equal(t, "Guide", outline.Title())
}

func TestOutlineEmpty(t *testing.T) {
	outline, err := ExtractOutline("")
	require.NoError(t, err)
	assert.Empty(t, outline.Headings)
	assert.NotNil(t, outline.Links)
	assert.Equal(t, "", outline.Title())

	outline, err = ExtractOutline(`<h3>Only</h3>`)
	require.NoError(t, err)
	assert.Equal(t, "Only", outline.Title())
}

func TestHTMLRenderer(t *testing.T) {
	out, err := NewHTMLRenderer().Render("<p>x</p>", core.DocumentMeta{})
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>\n", string(out))

	out, err = NewHTMLRenderer().Render("", core.DocumentMeta{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(fragment, core.DocumentMeta{Source: "guide.md"})
	require.NoError(t, err)

	var doc struct {
		Source  string       `json:"source"`
		Title   string       `json:"title"`
		HTML    string       `json:"html"`
		Outline core.Outline `json:"outline"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "guide.md", doc.Source)
	assert.Equal(t, "Guide", doc.Title)
	assert.Equal(t, fragment, doc.HTML)
	assert.Len(t, doc.Outline.Headings, 2)
	assert.Len(t, doc.Outline.Links, 1)
	assert.NotContains(t, string(out), "rendered_at")
}

func TestPageRenderer(t *testing.T) {
	meta := core.DocumentMeta{Source: `notes "x".md`, RenderedAt: "2026-01-02T03:04:05Z"}
	out, err := NewPageRenderer().Render(fragment, meta)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<!DOCTYPE html>"))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Guide", doc.Find("head title").Text())
	source, _ := doc.Find(`meta[name="source"]`).Attr("content")
	assert.Equal(t, `notes "x".md`, source)
	assert.Equal(t, "guide", doc.Find("main h1").AttrOr("id", ""))
	assert.Equal(t, 2, doc.Find("main li").Length())
}

func TestPageRendererUntitled(t *testing.T) {
	out, err := NewPageRenderer().Render("<p>x</p>", core.DocumentMeta{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<title>Untitled</title>")
	assert.NotContains(t, string(out), `name="source"`)
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(fragment, core.DocumentMeta{})
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "# Guide")
	assert.Contains(t, md, "## Setup")
	assert.Contains(t, md, "[docs](https://example.com/docs)")
	assert.Contains(t, md, "go run .")
	assert.Contains(t, md, "- one")

	out, err = NewMarkdownRenderer().Render("", core.DocumentMeta{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPDFRenderer(t *testing.T) {
	r := &PDFRenderer{}
	out, err := r.Render(fragment+`<blockquote><p>quoted</p></blockquote><hr>stray text`, core.DocumentMeta{
		Title:  "Guide",
		Source: "guide.md",
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	for _, text := range []string{"(Guide)", "(Source: guide.md)", "(Setup)", "(go run .)", "(k | v)", "(quoted)", "(stray text)"} {
		assert.True(t, bytes.Contains(out, []byte(text)), text)
	}
}

func TestPDFRendererCompressed(t *testing.T) {
	out, err := NewPDFRenderer().Render("<p>x</p>", core.DocumentMeta{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

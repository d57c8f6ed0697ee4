package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// MarkdownRenderer converts the sanitized fragment back into markdown. The
// result carries only what survived sanitization, so raw HTML and unsafe
// links from the source are gone.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts fragment to markdown.
func (r *MarkdownRenderer) Render(fragment string, meta core.DocumentMeta) ([]byte, error) {
	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return nil, nil
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".safe.md"
}

package render

import (
	"strings"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// HTMLRenderer writes the sanitized fragment as-is. It is the default output
// and matches what the HTTP endpoint returns.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the fragment followed by a newline.
func (r *HTMLRenderer) Render(fragment string, meta core.DocumentMeta) ([]byte, error) {
	if fragment == "" || strings.HasSuffix(fragment, "\n") {
		return []byte(fragment), nil
	}
	return []byte(fragment + "\n"), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

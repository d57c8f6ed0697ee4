package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/mdsafe/core"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Source}}
<meta name="source" content="{{.Source}}">
{{- end}}
{{- if .RenderedAt}}
<meta name="rendered-at" content="{{.RenderedAt}}">
{{- end}}
<title>{{.Title}}</title>
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// PageRenderer wraps the fragment in a standalone HTML5 document.
type PageRenderer struct{}

// NewPageRenderer creates a PageRenderer.
func NewPageRenderer() *PageRenderer {
	return &PageRenderer{}
}

// Render returns an HTML document. The fragment is inserted verbatim since
// it has already been sanitized; metadata values are escaped.
func (r *PageRenderer) Render(fragment string, meta core.DocumentMeta) ([]byte, error) {
	title := meta.Title
	if title == "" {
		outline, err := ExtractOutline(fragment)
		if err != nil {
			return nil, err
		}
		title = outline.Title()
	}
	if title == "" {
		title = "Untitled"
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title      string
		Source     string
		RenderedAt string
		Body       template.HTML
	}{
		Title:      title,
		Source:     meta.Source,
		RenderedAt: meta.RenderedAt,
		Body:       template.HTML(fragment),
	})
	if err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for page output.
func (r *PageRenderer) Extension() string {
	return ".page.html"
}

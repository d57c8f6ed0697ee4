package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// document is the JSON output shape.
type document struct {
	Source     string       `json:"source"`
	Title      string       `json:"title"`
	RenderedAt string       `json:"rendered_at,omitempty"`
	HTML       string       `json:"html"`
	Outline    core.Outline `json:"outline"`
}

// JSONRenderer produces the fragment together with its metadata and outline.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render builds the JSON document for fragment.
func (r *JSONRenderer) Render(fragment string, meta core.DocumentMeta) ([]byte, error) {
	outline, err := ExtractOutline(fragment)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = outline.Title()
	}

	data, err := json.MarshalIndent(document{
		Source:     meta.Source,
		Title:      title,
		RenderedAt: meta.RenderedAt,
		HTML:       fragment,
		Outline:    outline,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

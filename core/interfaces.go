// Package core defines the pipeline interfaces for mdsafe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds a remote markdown source and response metadata.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// DocumentMeta holds metadata about a rendered document.
type DocumentMeta struct {
	Source     string `json:"source"`
	Title      string `json:"title"`
	RenderedAt string `json:"rendered_at"` // ISO8601
}

// Heading represents a single heading found in the sanitized output.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// Link represents a hyperlink found in the sanitized output.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Outline holds the structural summary of a sanitized fragment.
type Outline struct {
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
}

// Violation describes a piece of sanitized output that falls outside the
// allow-list policy.
type Violation struct {
	Element   string `json:"element"`
	Attribute string `json:"attribute,omitempty"`
	Reason    string `json:"reason"`
}

func (v Violation) String() string {
	if v.Attribute == "" {
		return "<" + v.Element + ">: " + v.Reason
	}
	return "<" + v.Element + " " + v.Attribute + ">: " + v.Reason
}

// Converter turns markdown source into an untrusted HTML fragment.
type Converter interface {
	Convert(markdown string) (string, error)
}

// Sanitizer filters an untrusted HTML fragment against an allow-list.
type Sanitizer interface {
	Sanitize(html string) (string, error)
}

// Auditor re-checks a sanitized fragment and reports policy violations.
type Auditor interface {
	Audit(html string) ([]Violation, error)
}

// Fetcher retrieves markdown source from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts a sanitized fragment (and metadata) into a final output format.
type Renderer interface {
	Render(fragment string, meta DocumentMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".json").
	Extension() string
}

// Title returns the text of the first level-1 heading, or of the first
// heading when there is no level-1 heading.
func (o Outline) Title() string {
	for _, h := range o.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	if len(o.Headings) > 0 {
		return o.Headings[0].Text
	}
	return ""
}

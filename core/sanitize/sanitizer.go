// Package sanitize implements the Sanitizer interface.
// It filters untrusted HTML against an explicit allow-list of elements,
// attributes and URL schemes using bluemonday.
//
// Elements outside the allow-list are stripped and their text kept, except
// for elements whose content is itself unsafe (script, style, iframe and the
// like), which are dropped together with their content.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer applies a Policy through a compiled bluemonday policy.
// bluemonday policies are safe for concurrent use once built.
type HTMLSanitizer struct {
	policy   *Policy
	compiled *bluemonday.Policy
}

// New compiles p into an HTMLSanitizer. If p is nil, DefaultPolicy is used.
func New(p *Policy) *HTMLSanitizer {
	if p == nil {
		p = DefaultPolicy()
	}
	return &HTMLSanitizer{
		policy:   p,
		compiled: compile(p),
	}
}

// Policy returns the allow-list the sanitizer was built from.
func (s *HTMLSanitizer) Policy() *Policy {
	return s.policy
}

// Sanitize returns html restricted to the sanitizer's policy.
func (s *HTMLSanitizer) Sanitize(html string) (string, error) {
	return s.compiled.Sanitize(html), nil
}

func compile(p *Policy) *bluemonday.Policy {
	bm := bluemonday.NewPolicy()

	bm.AllowElements(p.AllowedElements...)
	// Allowed elements survive even when every attribute is stripped,
	// e.g. an anchor whose href had a forbidden scheme.
	bm.AllowNoAttrs().OnElements(p.AllowedElements...)

	for tag, attrs := range p.AllowedAttributes {
		if len(attrs) == 0 {
			continue
		}
		if tag == Wildcard {
			bm.AllowAttrs(attrs...).Globally()
			continue
		}
		// bluemonday treats an attribute rule as permission for its element,
		// so rules for elements outside the allow-list are not registered.
		if !p.AllowsElement(tag) {
			continue
		}
		bm.AllowAttrs(attrs...).OnElements(tag)
	}

	bm.RequireParseableURLs(true)
	bm.AllowRelativeURLs(true)
	bm.AllowURLSchemes(p.AllowedSchemes...)

	return bm
}

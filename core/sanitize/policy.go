package sanitize

import (
	"sort"
	"strings"
)

// Wildcard is the AllowedAttributes key whose attributes apply to every
// allowed element.
const Wildcard = "*"

// Policy is the allow-list applied by the sanitizer. Build it once and
// treat it as read-only.
type Policy struct {
	// AllowedElements lists the tag names kept in output.
	AllowedElements []string
	// AllowedAttributes maps a tag name, or Wildcard, to the attribute
	// names kept on it.
	AllowedAttributes map[string][]string
	// AllowedSchemes lists the URL schemes kept in href and src values.
	AllowedSchemes []string
}

// DefaultPolicy returns the allow-list served by mdsafe.
//
// The img entry is kept even though img is not an allowed element. It is
// reported by Unreachable and never enables img.
func DefaultPolicy() *Policy {
	return &Policy{
		AllowedElements: []string{
			"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "p", "a", "ul", "ol",
			"nl", "li", "b", "i", "strong", "em", "strike", "code", "hr", "br", "div",
			"table", "thead", "caption", "tbody", "tr", "th", "td", "pre", "span",
		},
		AllowedAttributes: map[string][]string{
			"a":      {"href", "name", "target"},
			"img":    {"src", "alt", "title"},
			Wildcard: {"class", "id"},
		},
		AllowedSchemes: []string{"http", "https", "ftp", "mailto"},
	}
}

// AllowsElement reports whether tag is in the element allow-list.
func (p *Policy) AllowsElement(tag string) bool {
	tag = strings.ToLower(tag)
	for _, el := range p.AllowedElements {
		if strings.ToLower(el) == tag {
			return true
		}
	}
	return false
}

// AllowsAttribute reports whether attr may appear on tag, either through the
// tag's own entry or the wildcard entry. It does not check the element itself.
func (p *Policy) AllowsAttribute(tag, attr string) bool {
	tag = strings.ToLower(tag)
	attr = strings.ToLower(attr)
	for _, key := range []string{tag, Wildcard} {
		for _, a := range p.AllowedAttributes[key] {
			if strings.ToLower(a) == attr {
				return true
			}
		}
	}
	return false
}

// AllowsScheme reports whether scheme is in the scheme allow-list.
func (p *Policy) AllowsScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, s := range p.AllowedSchemes {
		if strings.ToLower(s) == scheme {
			return true
		}
	}
	return false
}

// Unreachable returns the AllowedAttributes keys whose element is not in
// AllowedElements, sorted. Their attributes can never appear in output.
func (p *Policy) Unreachable() []string {
	var out []string
	for tag := range p.AllowedAttributes {
		if tag == Wildcard || p.AllowsElement(tag) {
			continue
		}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

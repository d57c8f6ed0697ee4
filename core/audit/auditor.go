// Package audit implements the Auditor interface.
// It re-parses a sanitized fragment and checks that:
//  1. every element is in the policy's element allow-list
//  2. every attribute is allowed on its element or globally
//  3. every href/src value uses an allowed scheme (or none)
package audit

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/mdsafe/core"
	"github.com/gaurav-prasanna/mdsafe/core/sanitize"
)

// urlAttributes are the attributes whose values are checked against the
// scheme allow-list.
var urlAttributes = map[string]bool{
	"href": true,
	"src":  true,
}

// PolicyAuditor checks fragments against a sanitize.Policy.
type PolicyAuditor struct {
	policy *sanitize.Policy
}

// New creates a PolicyAuditor for p.
func New(p *sanitize.Policy) *PolicyAuditor {
	return &PolicyAuditor{policy: p}
}

// Audit parses fragment and returns every violation found, in document order.
func (a *PolicyAuditor) Audit(fragment string) ([]core.Violation, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var violations []core.Violation
	// The parser moves leading script/style/meta into head, so both are walked.
	doc.Find("head *, body *").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			violations = append(violations, a.check(n)...)
		}
	})
	return violations, nil
}

func (a *PolicyAuditor) check(n *html.Node) []core.Violation {
	if n.Type != html.ElementNode {
		return nil
	}
	tag := strings.ToLower(n.Data)
	if !a.policy.AllowsElement(tag) {
		return []core.Violation{{Element: tag, Reason: "element not allowed"}}
	}

	var out []core.Violation
	for _, attr := range n.Attr {
		name := strings.ToLower(attr.Key)
		if !a.policy.AllowsAttribute(tag, name) {
			out = append(out, core.Violation{Element: tag, Attribute: name, Reason: "attribute not allowed"})
			continue
		}
		if urlAttributes[name] {
			if reason := a.checkURL(attr.Val); reason != "" {
				out = append(out, core.Violation{Element: tag, Attribute: name, Reason: reason})
			}
		}
	}
	return out
}

// checkURL returns a non-empty reason when raw does not parse or carries a
// scheme outside the allow-list. Relative URLs pass.
func (a *PolicyAuditor) checkURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "unparseable URL"
	}
	if u.Scheme != "" && !a.policy.AllowsScheme(u.Scheme) {
		return fmt.Sprintf("scheme %q not allowed", u.Scheme)
	}
	return ""
}

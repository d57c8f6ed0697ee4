// Package render provides output renderers for sanitized fragments.
// Every renderer receives HTML that already passed the sanitizer; none of
// them re-introduce markup of their own inside the fragment.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// ExtractOutline collects the headings and links of a fragment in document order.
func ExtractOutline(fragment string) (core.Outline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return core.Outline{}, fmt.Errorf("parsing HTML: %w", err)
	}

	outline := core.Outline{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, _ := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		id, _ := s.Attr("id")
		outline.Headings = append(outline.Headings, core.Heading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
			ID:    id,
		})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		outline.Links = append(outline.Links, core.Link{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})

	return outline, nil
}

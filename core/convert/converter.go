// Package convert implements the Converter interface.
// It turns markdown source into an HTML fragment using goldmark. The
// fragment is untrusted: raw HTML in the source is passed through and
// must go through the sanitize stage before it leaves the process.
package convert

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options selects the goldmark features applied by a MarkdownConverter.
type Options struct {
	// GFM enables tables, strikethrough, autolinks and task lists.
	GFM bool
	// HardWraps renders a single newline inside a paragraph as <br>.
	HardWraps bool
	// HeadingIDs gives every heading a deterministic id derived from its text.
	HeadingIDs bool
	// Typographer replaces straight quotes, dashes and ellipses.
	Typographer bool
	// RawHTML passes raw HTML in the source through unescaped.
	RawHTML bool
}

// DefaultOptions returns the fixed configuration used by the service.
func DefaultOptions() Options {
	return Options{
		GFM:         true,
		HardWraps:   true,
		HeadingIDs:  true,
		Typographer: true,
		RawHTML:     true,
	}
}

// MarkdownConverter converts markdown to HTML with a prebuilt goldmark engine.
// The engine is safe for concurrent use; each Convert gets its own parser context.
type MarkdownConverter struct {
	opts   Options
	engine goldmark.Markdown
}

// New creates a MarkdownConverter for the given options.
func New(opts Options) *MarkdownConverter {
	return &MarkdownConverter{
		opts:   opts,
		engine: newEngine(opts),
	}
}

// Options returns the configuration the converter was built with.
func (c *MarkdownConverter) Options() Options {
	return c.opts
}

// Convert renders markdown into an HTML fragment.
func (c *MarkdownConverter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

func newEngine(opts Options) goldmark.Markdown {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var parserOptions []parser.Option
	if opts.HeadingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}

	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.RawHTML {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

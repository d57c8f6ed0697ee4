package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// Stdin is the source name that reads from standard input.
const Stdin = "-"

// Loader resolves a source name to its markdown text.
type Loader struct {
	Fetcher  core.Fetcher
	Stdin    io.Reader
	MaxBytes int64
}

// NewLoader creates a Loader backed by an HTTPFetcher and os.Stdin.
func NewLoader() *Loader {
	return &Loader{Fetcher: New(), Stdin: os.Stdin, MaxBytes: DefaultMaxBytes}
}

// IsURL reports whether source is an absolute http(s) URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load returns the markdown text of source.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	switch {
	case source == Stdin:
		if l.Stdin == nil {
			return "", fmt.Errorf("reading stdin: no input")
		}
		text, err := readLimited(l.Stdin, limit)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return text, nil

	case IsURL(source):
		if l.Fetcher == nil {
			return "", fmt.Errorf("fetching %s: no fetcher configured", source)
		}
		result, err := l.Fetcher.Fetch(ctx, source)
		if err != nil {
			return "", err
		}
		return result.Body, nil

	default:
		f, err := os.Open(source)
		if err != nil {
			return "", fmt.Errorf("opening source: %w", err)
		}
		defer f.Close()
		text, err := readLimited(f, limit)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", source, err)
		}
		return text, nil
	}
}

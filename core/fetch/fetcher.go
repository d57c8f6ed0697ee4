// Package fetch implements the Fetcher interface and loads markdown sources
// for the render command. A source is an http(s) URL, a file path or "-" for
// standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/mdsafe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "mdsafe/1.0 (https://github.com/gaurav-prasanna/mdsafe)"

	// DefaultMaxBytes caps a single markdown source.
	DefaultMaxBytes int64 = 10 << 20
)

// HTTPFetcher fetches markdown documents via HTTP.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		maxBytes: DefaultMaxBytes,
	}
}

// Fetch retrieves the markdown body of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

func readLimited(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("source exceeds %d bytes", limit)
	}
	return string(data), nil
}

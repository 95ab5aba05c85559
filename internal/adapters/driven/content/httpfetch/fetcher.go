// Package httpfetch implements the ContentFetcher port over HTTP.
// Document paths are resolved against a configured base URL.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Defaults for the fetcher. The rate limit keeps an index rebuild from
// hammering the content host.
const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 20.0
	defaultBurst             = 5
)

// Fetcher retrieves markdown over HTTP with a token-bucket rate limit.
type Fetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithClient replaces the HTTP client. Useful for testing.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithRateLimit sets the sustained request rate and burst size.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a fetcher resolving paths against baseURL.
func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurst),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET for the document at filePath. Any non-2xx
// response is an error; the caller degrades to placeholder content.
func (f *Fetcher) Fetch(ctx context.Context, filePath string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	url := f.baseURL + "/" + strings.TrimLeft(filePath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

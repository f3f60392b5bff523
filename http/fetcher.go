// Package http provides an HTTP-based implementation of hotnews.PageFetcher.
// It is used for listing and article pages of server-rendered sites and
// for the JSON comment APIs.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ethanol1310/hotnews"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to news sites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; hotnews/1.0; +https://github.com/ethanol1310/hotnews)"

// Ensure Fetcher implements hotnews.PageFetcher at compile time.
var _ hotnews.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL, decoded to UTF-8 according to
// the response's declared charset. A non-2xx status is reported through
// Response.OK rather than as an error; its body is not read.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*hotnews.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &hotnews.Response{OK: false, StatusCode: resp.StatusCode}, nil
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body of %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return &hotnews.Response{
		OK:         true,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// Package rod provides a headless Chrome implementation of
// hotnews.PageFetcher for listing and article pages that need JavaScript.
package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements hotnews.PageFetcher at compile time.
var _ hotnews.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	managerOpts []ManagerOption
	timeout     time.Duration
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the page load timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithManagerOptions configures the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. The status is
// taken from the main document's network response; a non-2xx status is
// reported through Response.OK with an empty body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*hotnews.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, release, err := f.manager.Acquire()
	if errors.Is(err, ErrManagerClosed) {
		return nil, hotnews.Errorf(hotnews.EINVALID, "fetcher is closed")
	} else if err != nil {
		return nil, err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)
	defer page.CancelTimeout()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	var status int
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	waitDocument()
	if err := page.GetContext().Err(); err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return &hotnews.Response{OK: false, StatusCode: status}, nil
	}

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	return &hotnews.Response{OK: true, StatusCode: status, Body: html}, nil
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

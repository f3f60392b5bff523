package mock

import (
	"context"

	"github.com/ethanol1310/hotnews"
)

var (
	_ hotnews.PageFetcher   = (*PageFetcher)(nil)
	_ hotnews.DomainLimiter = (*DomainLimiter)(nil)
)

// PageFetcher is a mock implementation of hotnews.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*hotnews.Response, error)
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (*hotnews.Response, error) {
	return f.FetchFn(ctx, url)
}

// DomainLimiter is a mock implementation of hotnews.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/ethanol1310/hotnews"
	"golang.org/x/time/rate"
)

var (
	_ hotnews.DomainLimiter = (*DomainLimiter)(nil)
	_ hotnews.PageFetcher   = (*LimitedFetcher)(nil)
)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to the listing host, the
// article host and the comment API host do not slow each other down.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// LimitedFetcher waits on a DomainLimiter before every fetch.
type LimitedFetcher struct {
	next    hotnews.PageFetcher
	limiter hotnews.DomainLimiter
}

// NewLimitedFetcher wraps next so requests are spaced per host by limiter.
func NewLimitedFetcher(next hotnews.PageFetcher, limiter hotnews.DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{next: next, limiter: limiter}
}

// Fetch waits for the URL's host to be allowed, then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (*hotnews.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", u.Host, err)
	}
	return f.next.Fetch(ctx, rawURL)
}

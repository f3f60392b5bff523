package hotnews

import "context"

// Response is the outcome of a completed fetch.
type Response struct {
	// OK is true for a 2xx status.
	OK         bool
	StatusCode int
	Body       string
}

// PageFetcher retrieves the body of a URL.
type PageFetcher interface {
	// Fetch requests the URL and returns its body.
	// A non-2xx status is not an error: it is reported through Response.OK.
	// An error means the request itself failed (transport failure).
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

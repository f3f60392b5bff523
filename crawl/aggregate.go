package crawl

import (
	"context"
	"fmt"

	"github.com/ethanol1310/hotnews"
)

// Tally is the outcome of aggregating one comment thread.
type Tally struct {
	// Likes is the sum of the reaction weights of every comment read.
	Likes int
	// Pages is the number of comment pages decoded.
	Pages int
	// Err is the failure that cut the aggregation short, if any.
	// Likes still holds the total accumulated before the failure.
	Err error
}

// Aggregator walks an article's comment pages and sums their reactions.
type Aggregator struct {
	Fetcher hotnews.PageFetcher

	// MaxPages stops aggregation after this many requests. Zero means no limit.
	MaxPages int
}

// Aggregate reads the comment thread ep following the source's comment
// policy. It never fails: a transport error, a non-2xx status or an
// undecodable payload ends the walk and the partial total is returned.
// No request is retried.
func (a *Aggregator) Aggregate(ctx context.Context, src hotnews.SourceAdapter, ep hotnews.CommentEndpoint) Tally {
	policy := src.CommentPolicy()
	decoder := src.Decoder()

	var tally Tally
	requests := 0
	cur := policy.Start()
	for {
		if a.MaxPages > 0 && requests >= a.MaxPages {
			tally.Err = fmt.Errorf("comment page limit %d reached for object %s", a.MaxPages, ep.ObjectID)
			return tally
		}
		requests++

		url := src.CommentURL(ep, cur)
		resp, err := a.Fetcher.Fetch(ctx, url)
		if err != nil {
			tally.Err = fmt.Errorf("fetch comments %s: %w", url, err)
			return tally
		}
		if !resp.OK {
			tally.Err = fmt.Errorf("fetch comments %s: HTTP %d", url, resp.StatusCode)
			return tally
		}

		comments, err := decoder.Decode(resp.Body)
		if err != nil {
			tally.Err = fmt.Errorf("decode comments %s: %w", url, err)
			return tally
		}
		tally.Pages++
		if len(comments) == 0 {
			return tally
		}

		for _, c := range comments {
			tally.Likes += c.Weight()
		}

		next, more := policy.Next(cur, len(comments))
		if !more {
			return tally
		}
		cur = next
	}
}

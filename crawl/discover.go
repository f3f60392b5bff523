package crawl

import (
	"context"
	"fmt"

	"github.com/ethanol1310/hotnews"
)

// ListingPage is a listing page known to exist: it answered with a 2xx
// status and holds at least one article entry.
type ListingPage struct {
	Partition hotnews.Partition
	Number    int
	URL       string
	Doc       hotnews.Document
	// Entries is the number of elements matching the listing selector.
	Entries int
}

// Discoverer enumerates the listing pages of a partition.
type Discoverer struct {
	Fetcher hotnews.PageFetcher
	Parser  hotnews.PageParser
	Source  hotnews.SourceAdapter
}

// Pages returns a Pager over the listing pages of p, starting at page 1.
// The progress callback, if provided, is told about pages that answered
// with a non-2xx status.
func (d *Discoverer) Pages(p hotnews.Partition, progress ProgressFunc) *Pager {
	return &Pager{d: d, partition: p, next: 1, progress: progress}
}

// Pager yields the listing pages of one partition in order.
// Every page is fetched exactly once: the request that establishes a page
// exists is the one whose content is handed to the caller.
// A Pager is not safe for concurrent use.
type Pager struct {
	d         *Discoverer
	partition hotnews.Partition
	next      int
	done      bool
	progress  ProgressFunc
}

// Next fetches the following listing page. It returns (nil, nil) once a
// page answers with a non-2xx status or has no article entries, and on
// every call after that. A transport or parse error ends the sequence and
// is returned.
func (pg *Pager) Next(ctx context.Context) (*ListingPage, error) {
	if pg.done {
		return nil, nil
	}
	number := pg.next
	pg.next++

	src := pg.d.Source
	url := src.ListingURL(pg.partition, number)

	resp, err := pg.d.Fetcher.Fetch(ctx, url)
	if err != nil {
		pg.done = true
		return nil, fmt.Errorf("fetch listing page %d of %s: %w", number, pg.partition.Key(), err)
	}
	if !resp.OK {
		pg.done = true
		if pg.progress != nil {
			pg.progress(ProgressEvent{
				Type:      ProgressPageMissing,
				Partition: pg.partition.Key(),
				Page:      number,
				URL:       url,
				Status:    resp.StatusCode,
			})
		}
		return nil, nil
	}

	doc, err := pg.d.Parser.Parse(resp.Body)
	if err != nil {
		pg.done = true
		return nil, fmt.Errorf("parse listing page %d of %s: %w", number, pg.partition.Key(), err)
	}

	entries := len(doc.Find(src.ListingSelector()))
	if entries == 0 {
		pg.done = true
		return nil, nil
	}

	return &ListingPage{
		Partition: pg.partition,
		Number:    number,
		URL:       url,
		Doc:       doc,
		Entries:   entries,
	}, nil
}

// Package crawl ranks news articles by the reactions their comments
// collected. It enumerates listing pages per partition, fetches every
// article, aggregates comment likes through the source's comment API and
// records the result, all under a three-tier admission policy.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ethanol1310/hotnews"
	"golang.org/x/sync/errgroup"
)

// Crawler runs a ranking crawl against one source.
type Crawler struct {
	// Fetcher retrieves listing and article pages.
	Fetcher hotnews.PageFetcher
	// APIFetcher retrieves comment API payloads. Defaults to Fetcher.
	APIFetcher hotnews.PageFetcher
	Parser     hotnews.PageParser

	// Limits overrides the source's default gate capacities.
	// Zero fields keep the source default.
	Limits hotnews.Limits

	// MaxCommentPages caps the comment requests made per article.
	// Zero means no cap.
	MaxCommentPages int
}

// Result holds the outcome of a crawl.
type Result struct {
	Partitions       int
	FailedPartitions int
	Pages            int
	Articles         int
	FailedArticles   int
	CommentPages     int
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Partition string
	Page      int
	URL       string
	Title     string
	Likes     int
	Status    int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPartitionStarted
	ProgressPartitionCompleted
	ProgressPartitionFailed
	ProgressPageDiscovered
	ProgressPageMissing
	ProgressPageFailed
	ProgressArticleRecorded
	ProgressArticleFailed
	ProgressCommentsTruncated
	ProgressFinished
)

// String returns a short name for the event type.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressPartitionStarted:
		return "partition_started"
	case ProgressPartitionCompleted:
		return "partition_completed"
	case ProgressPartitionFailed:
		return "partition_failed"
	case ProgressPageDiscovered:
		return "page_discovered"
	case ProgressPageMissing:
		return "page_missing"
	case ProgressPageFailed:
		return "page_failed"
	case ProgressArticleRecorded:
		return "article_recorded"
	case ProgressArticleFailed:
		return "article_failed"
	case ProgressCommentsTruncated:
		return "comments_truncated"
	case ProgressFinished:
		return "finished"
	default:
		return fmt.Sprintf("ProgressType(%d)", int(t))
	}
}

// ProgressFunc is a callback for reporting crawl progress.
// It is called from many goroutines at once and must be safe for concurrent use.
type ProgressFunc func(event ProgressEvent)

// Crawl ranks the articles src published within r. Every article whose
// page could be fetched is recorded in store with its total likes.
//
// A failing partition does not affect the others, and a failing article
// does not affect its page. Crawl returns an error only for invalid
// arguments or when ctx is canceled; in the latter case the partial
// result is returned too.
func (c *Crawler) Crawl(ctx context.Context, src hotnews.SourceAdapter, r hotnews.DateRange, store hotnews.RankingStore, progress ProgressFunc) (*Result, error) {
	if src == nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "source required")
	}
	if store == nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "ranking store required")
	}
	if c.Fetcher == nil || c.Parser == nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "fetcher and parser required")
	}

	apiFetcher := c.APIFetcher
	if apiFetcher == nil {
		apiFetcher = c.Fetcher
	}

	limits := src.Limits().Merge(c.Limits)
	partitions := src.Partitions(r)

	rn := &run{
		src:      src,
		store:    store,
		progress: progress,
		fetcher:  c.Fetcher,
		parser:   c.Parser,
		gov:      NewGovernor(limits),
		discoverer: &Discoverer{
			Fetcher: c.Fetcher,
			Parser:  c.Parser,
			Source:  src,
		},
		aggregator: &Aggregator{
			Fetcher:  apiFetcher,
			MaxPages: c.MaxCommentPages,
		},
	}

	rn.emit(ProgressEvent{Type: ProgressStarted, Total: len(partitions)})

	if limits.Sequential {
		for _, p := range partitions {
			if ctx.Err() != nil {
				break
			}
			rn.finishPartition(p, safely(func() error { return rn.crawlPartition(ctx, p) }))
		}
	} else {
		var g errgroup.Group
		for _, p := range partitions {
			g.Go(func() error {
				err := rn.gov.Partitions.Do(ctx, func(ctx context.Context) error {
					return rn.crawlPartition(ctx, p)
				})
				rn.finishPartition(p, err)
				return nil
			})
		}
		_ = g.Wait()
	}

	result := rn.result()
	rn.emit(ProgressEvent{Type: ProgressFinished, Total: result.Articles})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// run holds the state shared by every goroutine of one crawl.
type run struct {
	src        hotnews.SourceAdapter
	store      hotnews.RankingStore
	progress   ProgressFunc
	fetcher    hotnews.PageFetcher
	parser     hotnews.PageParser
	gov        *Governor
	discoverer *Discoverer
	aggregator *Aggregator

	partitions       atomic.Int64
	failedPartitions atomic.Int64
	pages            atomic.Int64
	articles         atomic.Int64
	failedArticles   atomic.Int64
	commentPages     atomic.Int64
}

func (rn *run) emit(event ProgressEvent) {
	if rn.progress != nil {
		rn.progress(event)
	}
}

func (rn *run) result() *Result {
	return &Result{
		Partitions:       int(rn.partitions.Load()),
		FailedPartitions: int(rn.failedPartitions.Load()),
		Pages:            int(rn.pages.Load()),
		Articles:         int(rn.articles.Load()),
		FailedArticles:   int(rn.failedArticles.Load()),
		CommentPages:     int(rn.commentPages.Load()),
	}
}

func (rn *run) finishPartition(p hotnews.Partition, err error) {
	rn.partitions.Add(1)
	if err != nil {
		rn.failedPartitions.Add(1)
		rn.emit(ProgressEvent{Type: ProgressPartitionFailed, Partition: p.Key(), Error: err})
		return
	}
	rn.emit(ProgressEvent{Type: ProgressPartitionCompleted, Partition: p.Key()})
}

// crawlPartition walks the listing pages of p. A slot of the
// partition's page gate is held from launching a page's processing until
// the following page has been fetched, so the walk never runs ahead of
// the gate. Processing itself runs outside the gate, limited only by the
// article gate. Units already started always run to completion, even
// when the walk itself fails.
func (rn *run) crawlPartition(ctx context.Context, p hotnews.Partition) error {
	rn.emit(ProgressEvent{Type: ProgressPartitionStarted, Partition: p.Key()})

	gate := rn.gov.PageGate(p)
	pager := rn.discoverer.Pages(p, rn.progress)

	var units errgroup.Group
	page, err := pager.Next(ctx)
	for err == nil && page != nil {
		release, gateErr := gate.Acquire(ctx)
		if gateErr != nil {
			err = gateErr
			break
		}

		rn.pages.Add(1)
		rn.emit(ProgressEvent{
			Type:      ProgressPageDiscovered,
			Partition: p.Key(),
			Page:      page.Number,
			URL:       page.URL,
			Total:     page.Entries,
		})

		current := page
		units.Go(func() error {
			if err := safely(func() error { return rn.processPage(ctx, current) }); err != nil {
				rn.emit(ProgressEvent{
					Type:      ProgressPageFailed,
					Partition: p.Key(),
					Page:      current.Number,
					URL:       current.URL,
					Error:     err,
				})
			}
			return nil
		})

		page, err = pager.Next(ctx)
		release()
	}

	_ = units.Wait()
	return err
}

// processPage runs the article pipeline for every article of a listing
// page and returns once all of them have finished. Articles cut short by
// cancellation are not counted as failures.
func (rn *run) processPage(ctx context.Context, page *ListingPage) error {
	links := rn.src.ExtractArticles(page.Doc)

	var g errgroup.Group
	for _, link := range links {
		g.Go(func() error {
			err := rn.gov.Articles.Do(ctx, func(ctx context.Context) error {
				return rn.processArticle(ctx, page.Partition, link)
			})
			if err != nil && ctx.Err() == nil {
				rn.failedArticles.Add(1)
				rn.emit(ProgressEvent{
					Type:      ProgressArticleFailed,
					Partition: page.Partition.Key(),
					URL:       link.URL,
					Title:     link.Title,
					Error:     err,
				})
			}
			return nil
		})
	}
	return g.Wait()
}

// processArticle fetches an article, aggregates the likes of its comment
// thread and records it. An article without a comment section is recorded
// with zero likes.
func (rn *run) processArticle(ctx context.Context, p hotnews.Partition, link hotnews.ArticleLink) error {
	resp, err := rn.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("fetch article: HTTP %d", resp.StatusCode)
	}

	doc, err := rn.parser.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("parse article: %w", err)
	}

	var likes int
	if ep, ok := rn.src.CommentEndpoint(doc); ok {
		tally := rn.aggregator.Aggregate(ctx, rn.src, ep)
		likes = tally.Likes
		rn.commentPages.Add(int64(tally.Pages))
		if tally.Err != nil {
			rn.emit(ProgressEvent{
				Type:      ProgressCommentsTruncated,
				Partition: p.Key(),
				URL:       link.URL,
				Likes:     likes,
				Error:     tally.Err,
			})
		}
	}

	rn.store.Record(&hotnews.Article{
		Title:      link.Title,
		URL:        link.URL,
		TotalLikes: likes,
	})
	rn.articles.Add(1)
	rn.emit(ProgressEvent{
		Type:      ProgressArticleRecorded,
		Partition: p.Key(),
		URL:       link.URL,
		Title:     link.Title,
		Likes:     likes,
	})
	return nil
}

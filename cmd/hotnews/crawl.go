package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/fs"
	hnslog "github.com/ethanol1310/hotnews/slog"
	"github.com/ethanol1310/hotnews/vnexpress"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	src, err := deps.Sources.Lookup(hotnews.SourceName(c.Source))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
		return err
	}

	r, err := c.dateRange()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
		return err
	}

	sc := deps.Config.Source(src.Name())

	categories := c.Category
	if len(categories) == 0 {
		categories = sc.Categories
	}
	if len(categories) > 0 {
		vne, ok := src.(*vnexpress.Source)
		if !ok {
			err := hotnews.Errorf(hotnews.EINVALID, "categories are only supported by %s", hotnews.SourceVnExpress)
			fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
			return err
		}
		if src, err = vne.Only(categories...); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
			return err
		}
	}

	// Apply user-specified limits on top of the config file.
	deps.Crawler.Limits = sc.Limits().Merge(hotnews.Limits{
		Partitions: c.Partitions,
		Pages:      c.Pages,
		Articles:   c.Articles,
	})
	deps.Crawler.MaxCommentPages = c.maxCommentPages(sc)

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ranking := crawl.NewRanking()
	result, err := deps.Crawler.Crawl(deps.Ctx, src, r, ranking, hnslog.NewProgressLogger(logger))
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
		return err
	}
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Crawl interrupted, showing partial results")
	}

	top := ranking.All()
	if c.Top > 0 {
		top = ranking.TopN(c.Top)
	}
	if len(top) == 0 {
		fmt.Fprintf(deps.Stdout, "No articles found for %s %s\n", src.Name(), r)
	} else {
		fmt.Fprintf(deps.Stdout, "Top %d of %d %s articles, %s:\n\n", len(top), ranking.Len(), src.Name(), r)
		fmt.Fprintln(deps.Stdout, hotnews.FormatRanking(top))
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", crawl.FormatResult(result))

	if err != nil {
		if c.Save {
			fmt.Fprintln(deps.Stderr, "Interrupted crawls are not saved")
		}
		return err
	}

	run := &hotnews.Run{
		Source:   src.Name(),
		Start:    r.Start.Format(time.DateOnly),
		End:      r.End.Format(time.DateOnly),
		Total:    ranking.Len(),
		Articles: top,
	}

	if c.Save {
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", hotnews.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved run %s\n", run.ID)
	}

	if c.Out != "" {
		if err := fs.WriteReport(c.Out, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing report: %s\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Out)
	}

	return nil
}

func (c *CrawlCmd) dateRange() (hotnews.DateRange, error) {
	from, err := time.ParseInLocation(time.DateOnly, c.From, hotnews.Vietnam)
	if err != nil {
		return hotnews.DateRange{}, hotnews.Errorf(hotnews.EINVALID, "invalid --from date %q, expected YYYY-MM-DD", c.From)
	}
	to, err := time.ParseInLocation(time.DateOnly, c.To, hotnews.Vietnam)
	if err != nil {
		return hotnews.DateRange{}, hotnews.Errorf(hotnews.EINVALID, "invalid --to date %q, expected YYYY-MM-DD", c.To)
	}
	return hotnews.NewDateRange(from, to, hotnews.Vietnam)
}

// maxCommentPages resolves the comment request ceiling: the flag, then the
// config, then the default. A negative value lifts the ceiling.
func (c *CrawlCmd) maxCommentPages(sc SourceConfig) int {
	n := c.MaxCommentPages
	if n == 0 {
		n = sc.MaxCommentPages
	}
	if n == 0 {
		n = defaultMaxCommentPages
	}
	if n < 0 {
		return 0
	}
	return n
}

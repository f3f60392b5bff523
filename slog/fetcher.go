// Package slog wraps hotnews services with structured logging and turns
// crawl progress events into log records.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethanol1310/hotnews"
)

// Ensure LoggingFetcher implements hotnews.PageFetcher.
var _ hotnews.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with request logging.
type LoggingFetcher struct {
	next   hotnews.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next hotnews.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *hotnews.Response, err error) {
	defer func(begin time.Time) {
		var status, bytes int
		if resp != nil {
			status, bytes = resp.StatusCode, len(resp.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

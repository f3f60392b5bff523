package slog

import (
	"log/slog"

	"github.com/ethanol1310/hotnews/crawl"
)

// listingURLWidth bounds listing URLs in page records. Their tail holds
// the category and page number.
const listingURLWidth = 72

// NewProgressLogger returns a crawl.ProgressFunc that writes each event as
// a log record. Failures log at Warn, per-article events at Debug and run
// and partition milestones at Info.
func NewProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			logger.Info("crawl started", "partitions", e.Total)
		case crawl.ProgressFinished:
			logger.Info("crawl finished", "articles", e.Total)
		case crawl.ProgressPartitionStarted:
			logger.Info("partition started", "partition", e.Partition)
		case crawl.ProgressPartitionCompleted:
			logger.Info("partition completed", "partition", e.Partition)
		case crawl.ProgressPartitionFailed:
			logger.Warn("partition failed", "partition", e.Partition, "err", e.Error)
		case crawl.ProgressPageDiscovered:
			logger.Debug("page discovered",
				"partition", e.Partition,
				"page", e.Page,
				"entries", e.Total,
				"url", crawl.TruncateURL(e.URL, listingURLWidth),
			)
		case crawl.ProgressPageMissing:
			logger.Debug("page missing",
				"partition", e.Partition,
				"page", e.Page,
				"status", e.Status,
				"url", crawl.TruncateURL(e.URL, listingURLWidth),
			)
		case crawl.ProgressPageFailed:
			logger.Warn("page failed",
				"partition", e.Partition,
				"page", e.Page,
				"url", e.URL,
				"err", e.Error,
			)
		case crawl.ProgressArticleRecorded:
			logger.Debug("article recorded",
				"partition", e.Partition,
				"likes", e.Likes,
				"url", e.URL,
			)
		case crawl.ProgressArticleFailed:
			logger.Warn("article failed",
				"partition", e.Partition,
				"url", e.URL,
				"err", e.Error,
			)
		case crawl.ProgressCommentsTruncated:
			logger.Warn("comments truncated",
				"partition", e.Partition,
				"likes", e.Likes,
				"url", e.URL,
				"err", e.Error,
			)
		default:
			logger.Debug("crawl event", "type", e.Type.String())
		}
	}
}

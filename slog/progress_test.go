package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethanol1310/hotnews/crawl"
	hotslog "github.com/ethanol1310/hotnews/slog"
	"github.com/stretchr/testify/assert"
)

func TestNewProgressLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs partition failure at warn with error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hotslog.NewProgressLogger(debugLogger(&buf))
		progress(crawl.ProgressEvent{
			Type:      crawl.ProgressPartitionFailed,
			Partition: "vnexpress/1001005",
			Error:     errors.New("connection reset"),
		})

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `msg="partition failed"`)
		assert.Contains(t, output, "partition=vnexpress/1001005")
		assert.Contains(t, output, `err="connection reset"`)
	})

	t.Run("logs recorded article likes at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hotslog.NewProgressLogger(debugLogger(&buf))
		progress(crawl.ProgressEvent{
			Type:  crawl.ProgressArticleRecorded,
			URL:   "https://tuoitre.vn/a.htm",
			Likes: 42,
		})

		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "likes=42")
	})

	t.Run("hides per-article events at info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hotslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))
		progress(crawl.ProgressEvent{Type: crawl.ProgressArticleRecorded, URL: "https://tuoitre.vn/a.htm"})
		progress(crawl.ProgressEvent{Type: crawl.ProgressStarted, Total: 3})

		output := buf.String()
		assert.NotContains(t, output, "article recorded")
		assert.Contains(t, output, `msg="crawl started" partitions=3`)
	})

	t.Run("logs truncated comment threads", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := hotslog.NewProgressLogger(debugLogger(&buf))
		progress(crawl.ProgressEvent{
			Type:  crawl.ProgressCommentsTruncated,
			Likes: 7,
			Error: errors.New("HTTP 429"),
		})

		assert.Contains(t, buf.String(), `msg="comments truncated"`)
	})

	t.Run("shortens listing URLs keeping the page number", func(t *testing.T) {
		t.Parallel()

		url := "https://vnexpress.net/category/day/cateid/1001005/fromdate/1709226000/todate/1709398799/allcate/1001005/page/12"

		var buf bytes.Buffer
		progress := hotslog.NewProgressLogger(debugLogger(&buf))
		progress(crawl.ProgressEvent{
			Type:      crawl.ProgressPageMissing,
			Partition: "vnexpress/1001005",
			Page:      12,
			Status:    404,
			URL:       url,
		})

		output := buf.String()
		assert.Contains(t, output, "status=404")
		assert.Contains(t, output, "/page/12")
		assert.NotContains(t, output, url)
	})
}

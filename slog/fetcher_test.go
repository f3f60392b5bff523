package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/mock"
	hotslog "github.com/ethanol1310/hotnews/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageFetcher{
			FetchFn: func(ctx context.Context, url string) (*hotnews.Response, error) {
				return &hotnews.Response{OK: true, StatusCode: 200, Body: "<html>content</html>"}, nil
			},
		}

		fetcher := hotslog.NewLoggingFetcher(inner, debugLogger(&buf))
		resp, err := fetcher.Fetch(context.Background(), "https://vnexpress.net/a.html")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", resp.Body)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://vnexpress.net/a.html")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageFetcher{
			FetchFn: func(ctx context.Context, url string) (*hotnews.Response, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := hotslog.NewLoggingFetcher(inner, debugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://tuoitre.vn/")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "status=0")
		assert.Contains(t, output, `err="network error"`)
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageFetcher{
			FetchFn: func(ctx context.Context, url string) (*hotnews.Response, error) {
				return &hotnews.Response{OK: true, StatusCode: 200}, nil
			},
		}

		fetcher := hotslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := fetcher.Fetch(context.Background(), "https://tuoitre.vn/")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

package tuoitre_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/goquery"
	"github.com/ethanol1310/hotnews/tuoitre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) hotnews.Document {
	t.Helper()
	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return doc
}

func TestSource(t *testing.T) {
	t.Parallel()

	src := tuoitre.NewSource()

	r, err := hotnews.NewDateRange(
		time.Date(2024, 2, 28, 0, 0, 0, 0, hotnews.Vietnam),
		time.Date(2024, 3, 1, 0, 0, 0, 0, hotnews.Vietnam),
		hotnews.Vietnam,
	)
	require.NoError(t, err)

	t.Run("partitions by calendar day in order", func(t *testing.T) {
		t.Parallel()

		partitions := src.Partitions(r)

		require.Len(t, partitions, 3)
		assert.Equal(t, "tuoitre/2024-02-28", partitions[0].Key())
		assert.Equal(t, "tuoitre/2024-02-29", partitions[1].Key())
		assert.Equal(t, "tuoitre/2024-03-01", partitions[2].Key())
		assert.True(t, time.Date(2024, 2, 29, 23, 59, 59, 0, hotnews.Vietnam).Equal(partitions[1].To))
	})

	t.Run("builds timeline listing URL", func(t *testing.T) {
		t.Parallel()

		p := src.Partitions(r)[1]
		assert.Equal(t, "https://tuoitre.vn/timeline-xem-theo-ngay/0/29-02-2024/trang-2.htm", src.ListingURL(p, 2))
	})

	t.Run("resolves relative article links", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
			<a class="box-category-link-title" href="/gia-xang-giam-2024022812.htm" title="Giá xăng giảm">Giá xăng giảm</a>
			<a class="box-category-link-title" href="https://tuoitre.vn/bong-da-2024022813.htm">Bóng đá</a>
			<a class="box-category-link-title" href="" title="Empty link"></a>
		</body></html>`)

		links := src.ExtractArticles(doc)

		assert.Equal(t, []hotnews.ArticleLink{
			{URL: "https://tuoitre.vn/gia-xang-giam-2024022812.htm", Title: "Giá xăng giảm"},
			{URL: "https://tuoitre.vn/bong-da-2024022813.htm", Title: "Bóng đá"},
		}, links)
	})

	t.Run("finds the comment endpoint", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<html><body>
			<div class="detail-comment" data-objectid="20240228123456789" data-objecttype="1"></div>
		</body></html>`)

		ep, ok := src.CommentEndpoint(doc)

		require.True(t, ok)
		assert.Equal(t, "20240228123456789", ep.ObjectID)
	})

	t.Run("reports article without comment section", func(t *testing.T) {
		t.Parallel()

		_, ok := src.CommentEndpoint(parse(t, `<html><body><div class="detail-comment"></div></body></html>`))
		assert.False(t, ok)
	})

	t.Run("builds page-numbered comment URL", func(t *testing.T) {
		t.Parallel()

		got := src.CommentURL(hotnews.CommentEndpoint{ObjectID: "2024", ObjectType: "1"}, hotnews.CommentCursor{Page: 3})

		u, err := url.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, "id.tuoitre.vn", u.Host)
		assert.Equal(t, "3", u.Query().Get("pageindex"))
		assert.Equal(t, "2024", u.Query().Get("objId"))
		assert.Equal(t, "1", u.Query().Get("objType"))
	})

	t.Run("pages comments one page at a time", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.PageByPage{}, src.CommentPolicy())
	})

	t.Run("crawls days sequentially", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, hotnews.Limits{Partitions: 1, Pages: 1, Articles: 5, Sequential: true}, src.Limits())
	})
}

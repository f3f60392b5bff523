// Package tuoitre implements the Tuổi Trẻ news source.
//
// Listings are paged per calendar day through the timeline pages, and
// comment threads are read page by page from the id.tuoitre.vn API.
package tuoitre

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
)

const (
	// BaseURL is the Tuổi Trẻ site root. Listing links are relative to it.
	BaseURL = "https://tuoitre.vn"

	// CommentAPIURL is the comment listing endpoint.
	CommentAPIURL = "https://id.tuoitre.vn/api/getlist-comment.api"

	listingSelector = "a.box-category-link-title"
	commentSelector = ".detail-comment"
)

var (
	_ hotnews.SourceAdapter = (*Source)(nil)

	base = mustParse(BaseURL)
)

// Source is the Tuổi Trẻ source adapter.
type Source struct{}

// NewSource creates a Source.
func NewSource() *Source {
	return &Source{}
}

func (s *Source) Name() hotnews.SourceName {
	return hotnews.SourceTuoiTre
}

// Partitions returns one partition per calendar day of the range.
func (s *Source) Partitions(r hotnews.DateRange) []hotnews.Partition {
	days := r.Days()
	partitions := make([]hotnews.Partition, 0, len(days))
	for _, d := range days {
		partitions = append(partitions, hotnews.Partition{
			Source: hotnews.SourceTuoiTre,
			Day:    d,
			From:   d,
			To:     d.AddDate(0, 0, 1).Add(-time.Second),
		})
	}
	return partitions
}

func (s *Source) ListingURL(p hotnews.Partition, page int) string {
	return fmt.Sprintf("%s/timeline-xem-theo-ngay/0/%s/trang-%d.htm", BaseURL, p.Day.Format("02-01-2006"), page)
}

func (s *Source) ListingSelector() string {
	return listingSelector
}

// ExtractArticles reads the timeline links of a listing page and resolves
// them against the site root.
func (s *Source) ExtractArticles(doc hotnews.Document) []hotnews.ArticleLink {
	var links []hotnews.ArticleLink
	for _, el := range doc.Find(listingSelector) {
		href, _ := el.Attr("href")
		href = strings.TrimSpace(href)
		title, _ := el.Attr("title")
		title = strings.TrimSpace(title)
		if title == "" {
			title = el.Text()
		}
		if href == "" || title == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		links = append(links, hotnews.ArticleLink{
			URL:   base.ResolveReference(ref).String(),
			Title: title,
		})
	}
	return links
}

// CommentEndpoint reads the object identity from the comment section.
func (s *Source) CommentEndpoint(doc hotnews.Document) (hotnews.CommentEndpoint, bool) {
	for _, el := range doc.Find(commentSelector) {
		id, _ := el.Attr("data-objectid")
		typ, _ := el.Attr("data-objecttype")
		if id != "" && typ != "" {
			return hotnews.CommentEndpoint{ObjectID: id, ObjectType: typ}, true
		}
	}
	return hotnews.CommentEndpoint{}, false
}

func (s *Source) CommentURL(ep hotnews.CommentEndpoint, cur hotnews.CommentCursor) string {
	q := url.Values{}
	q.Set("pageindex", fmt.Sprint(cur.Page))
	q.Set("objId", ep.ObjectID)
	q.Set("objType", ep.ObjectType)
	q.Set("sort", "2")
	return CommentAPIURL + "?" + q.Encode()
}

func (s *Source) CommentPolicy() hotnews.CommentPolicy {
	return crawl.PageByPage{}
}

func (s *Source) Decoder() hotnews.CommentDecoder {
	return &Decoder{}
}

// Limits crawls days one after another in calendar order, one listing
// page at a time with five articles in flight.
func (s *Source) Limits() hotnews.Limits {
	return hotnews.Limits{Partitions: 1, Pages: 1, Articles: 5, Sequential: true}
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

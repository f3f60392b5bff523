// Package vnexpress implements the VnExpress news source.
//
// Listings are paged per category over the whole date range, and comment
// threads are read from the usi-saas API with a growing offset/limit window.
package vnexpress

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
)

const (
	// BaseURL is the VnExpress site root.
	BaseURL = "https://vnexpress.net"

	// CommentAPIURL is the comment listing endpoint.
	CommentAPIURL = "https://usi-saas.vnexpress.net/index/get"

	// WindowStep is the growth of the comment window per request.
	WindowStep = 1000

	listingSelector = "h3.title-news a"
	commentSelector = "span.txt_num_comment"
)

var _ hotnews.SourceAdapter = (*Source)(nil)

// Source is the VnExpress source adapter.
type Source struct {
	Categories []Category
}

// NewSource creates a Source crawling the built-in category catalog.
func NewSource() (*Source, error) {
	categories, err := DefaultCategories()
	if err != nil {
		return nil, err
	}
	return &Source{Categories: categories}, nil
}

// Only returns a copy of s restricted to the given category IDs.
// Returns EINVALID for an ID not in the catalog.
func (s *Source) Only(ids ...string) (*Source, error) {
	byID := make(map[string]Category, len(s.Categories))
	for _, c := range s.Categories {
		byID[c.ID] = c
	}

	out := &Source{}
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, hotnews.Errorf(hotnews.EINVALID, "unknown vnexpress category %q", id)
		}
		out.Categories = append(out.Categories, c)
	}
	return out, nil
}

func (s *Source) Name() hotnews.SourceName {
	return hotnews.SourceVnExpress
}

// Partitions returns one partition per category spanning the whole range.
func (s *Source) Partitions(r hotnews.DateRange) []hotnews.Partition {
	partitions := make([]hotnews.Partition, 0, len(s.Categories))
	for _, c := range s.Categories {
		partitions = append(partitions, hotnews.Partition{
			Source:       hotnews.SourceVnExpress,
			CategoryID:   c.ID,
			CategoryName: c.Name,
			From:         r.Start,
			To:           r.End,
		})
	}
	return partitions
}

func (s *Source) ListingURL(p hotnews.Partition, page int) string {
	return fmt.Sprintf("%s/category/day/cateid/%s/fromdate/%d/todate/%d/allcate/%s/page/%d",
		BaseURL, p.CategoryID, p.From.Unix(), p.To.Unix(), p.CategoryID, page)
}

func (s *Source) ListingSelector() string {
	return listingSelector
}

// ExtractArticles reads the title links of a listing page. The title
// attribute is preferred over the link text.
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
		links = append(links, hotnews.ArticleLink{URL: href, Title: title})
	}
	return links
}

// CommentEndpoint reads the object identity from the comment counter.
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
	q.Set("offset", fmt.Sprint(cur.Offset))
	q.Set("limit", fmt.Sprint(cur.Limit))
	q.Set("frommobile", "0")
	q.Set("sort", "like")
	q.Set("is_onload", "1")
	q.Set("objectid", ep.ObjectID)
	q.Set("objecttype", ep.ObjectType)
	q.Set("siteid", "1000000")
	return CommentAPIURL + "?" + q.Encode()
}

func (s *Source) CommentPolicy() hotnews.CommentPolicy {
	return crawl.GrowingWindow{Step: WindowStep}
}

func (s *Source) Decoder() hotnews.CommentDecoder {
	return &Decoder{}
}

// Limits crawls categories one at a time with three articles in flight.
func (s *Source) Limits() hotnews.Limits {
	return hotnews.Limits{Partitions: 1, Pages: 1, Articles: 3}
}

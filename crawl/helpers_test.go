package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/mock"
)

// site serves canned responses keyed by URL and counts requests.
// Unknown URLs answer 404.
type site struct {
	mu    sync.Mutex
	pages map[string]*hotnews.Response
	errs  map[string]error
	hits  map[string]int
	order []string
}

func newSite() *site {
	return &site{
		pages: make(map[string]*hotnews.Response),
		errs:  make(map[string]error),
		hits:  make(map[string]int),
	}
}

func (s *site) page(url, body string) {
	s.pages[url] = &hotnews.Response{OK: true, StatusCode: 200, Body: body}
}

func (s *site) status(url string, code int) {
	s.pages[url] = &hotnews.Response{OK: false, StatusCode: code}
}

func (s *site) fail(url string, err error) {
	s.errs[url] = err
}

func (s *site) count(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[url]
}

func (s *site) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *site) Fetch(_ context.Context, url string) (*hotnews.Response, error) {
	s.mu.Lock()
	s.hits[url]++
	s.order = append(s.order, url)
	s.mu.Unlock()

	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	if resp, ok := s.pages[url]; ok {
		return resp, nil
	}
	return &hotnews.Response{OK: false, StatusCode: 404}, nil
}

// Fixture page bodies:
//
//	"links:<url>|<title>,<url>|<title>"  listing page
//	"comments:<objectID>"                 article page with a comment section
//	"plain"                               article page without comments
//	"likes:5,3"                           comment page with two comments
//	""                                    empty comment page
//	"bad"                                 undecodable comment page
const (
	entrySelector   = "a.entry"
	commentSelector = "div.comments"
)

func parseFixture(body string) (hotnews.Document, error) {
	var links, comments []hotnews.Element
	switch {
	case strings.HasPrefix(body, "links:"):
		rest := strings.TrimPrefix(body, "links:")
		if rest == "" {
			break
		}
		for _, entry := range strings.Split(rest, ",") {
			url, title, _ := strings.Cut(entry, "|")
			links = append(links, &mock.Element{
				Attrs:   map[string]string{"href": url},
				Content: title,
			})
		}
	case strings.HasPrefix(body, "comments:"):
		comments = append(comments, &mock.Element{
			Attrs: map[string]string{"data-id": strings.TrimPrefix(body, "comments:")},
		})
	}
	return &mock.Document{
		FindFn: func(selector string) []hotnews.Element {
			switch selector {
			case entrySelector:
				return links
			case commentSelector:
				return comments
			}
			return nil
		},
	}, nil
}

func fixtureParser() *mock.PageParser {
	return &mock.PageParser{ParseFn: parseFixture}
}

func fixtureDecoder() *mock.CommentDecoder {
	return &mock.CommentDecoder{
		DecodeFn: func(body string) ([]hotnews.Comment, error) {
			if body == "" {
				return nil, nil
			}
			if !strings.HasPrefix(body, "likes:") {
				return nil, errors.New("no comment list")
			}
			var comments []hotnews.Comment
			for i, v := range strings.Split(strings.TrimPrefix(body, "likes:"), ",") {
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, err
				}
				comments = append(comments, hotnews.Comment{
					ID:        strconv.Itoa(i),
					Reactions: map[string]int{"like": n},
				})
			}
			return comments, nil
		},
	}
}

func listingURL(category string, page int) string {
	return fmt.Sprintf("https://news.test/%s/page/%d", category, page)
}

func commentURL(objectID string, page int) string {
	return fmt.Sprintf("https://api.test/comments?id=%s&page=%d", objectID, page)
}

func category(id string) hotnews.Partition {
	return hotnews.Partition{Source: "test", CategoryID: id, CategoryName: id}
}

// fixtureSource is a page-by-page source over the given partitions.
func fixtureSource(limits hotnews.Limits, partitions ...hotnews.Partition) *mock.SourceAdapter {
	return &mock.SourceAdapter{
		NameFn: func() hotnews.SourceName { return "test" },
		PartitionsFn: func(hotnews.DateRange) []hotnews.Partition {
			return partitions
		},
		ListingURLFn: func(p hotnews.Partition, page int) string {
			return listingURL(p.CategoryID, page)
		},
		ListingSelectorFn: func() string { return entrySelector },
		ExtractArticlesFn: func(doc hotnews.Document) []hotnews.ArticleLink {
			var links []hotnews.ArticleLink
			for _, el := range doc.Find(entrySelector) {
				href, _ := el.Attr("href")
				links = append(links, hotnews.ArticleLink{URL: href, Title: el.Text()})
			}
			return links
		},
		CommentEndpointFn: func(doc hotnews.Document) (hotnews.CommentEndpoint, bool) {
			els := doc.Find(commentSelector)
			if len(els) == 0 {
				return hotnews.CommentEndpoint{}, false
			}
			id, _ := els[0].Attr("data-id")
			return hotnews.CommentEndpoint{ObjectID: id, ObjectType: "1"}, true
		},
		CommentURLFn: func(ep hotnews.CommentEndpoint, cur hotnews.CommentCursor) string {
			return commentURL(ep.ObjectID, cur.Page)
		},
		CommentPolicyFn: func() hotnews.CommentPolicy { return pageByPage() },
		DecoderFn:       func() hotnews.CommentDecoder { return fixtureDecoder() },
		LimitsFn:        func() hotnews.Limits { return limits },
	}
}

// pageByPage walks numbered pages until one is empty, without relying on
// crawl.PageByPage.
func pageByPage() *mock.CommentPolicy {
	return &mock.CommentPolicy{
		StartFn: func() hotnews.CommentCursor { return hotnews.CommentCursor{Page: 1} },
		NextFn: func(cur hotnews.CommentCursor, items int) (hotnews.CommentCursor, bool) {
			if items == 0 {
				return cur, false
			}
			return hotnews.CommentCursor{Page: cur.Page + 1}, true
		},
	}
}

// events collects progress events from concurrent goroutines.
type events struct {
	mu  sync.Mutex
	all []crawl.ProgressEvent
}

func (e *events) record(ev crawl.ProgressEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.all = append(e.all, ev)
}

func (e *events) ofType(typ crawl.ProgressType) []crawl.ProgressEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []crawl.ProgressEvent
	for _, ev := range e.all {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

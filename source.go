package hotnews

import (
	"fmt"
	"time"
)

// SourceName identifies a news source.
type SourceName string

// Supported news sources.
const (
	SourceVnExpress SourceName = "vnexpress"
	SourceTuoiTre   SourceName = "tuoitre"
)

// Vietnam is the civil calendar both sources publish in.
// Vietnam observes no daylight saving time, so a fixed zone is exact.
var Vietnam = time.FixedZone("ICT", 7*60*60)

// DateRange is an inclusive range of calendar days.
// Start is the first instant of the first day, End the last second of the last day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes start and end to whole days in loc.
// Returns EINVALID if end falls on a day before start.
func NewDateRange(start, end time.Time, loc *time.Location) (DateRange, error) {
	start = startOfDay(start.In(loc))
	end = startOfDay(end.In(loc))
	if end.Before(start) {
		return DateRange{}, Errorf(EINVALID, "end date %s is before start date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return DateRange{
		Start: start,
		End:   end.AddDate(0, 0, 1).Add(-time.Second),
	}, nil
}

// Days returns the first instant of every day in the range, in calendar order.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := startOfDay(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// String formats the range as "YYYY-MM-DD..YYYY-MM-DD".
func (r DateRange) String() string {
	return r.Start.Format(time.DateOnly) + ".." + r.End.Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Partition is the unit of pagination scope of a source: a category over
// the whole date range, or a single calendar day.
type Partition struct {
	Source       SourceName
	CategoryID   string
	CategoryName string
	From         time.Time
	To           time.Time
	Day          time.Time
}

// Key returns a short label identifying the partition in logs.
func (p Partition) Key() string {
	if p.CategoryID != "" {
		return fmt.Sprintf("%s/%s", p.Source, p.CategoryID)
	}
	return fmt.Sprintf("%s/%s", p.Source, p.Day.Format(time.DateOnly))
}

// Limits holds the admission gate capacities used while crawling a source.
type Limits struct {
	// Partitions is the number of partitions crawled at once.
	Partitions int
	// Pages is the number of listing pages processed at once within a partition.
	Pages int
	// Articles is the number of article pipelines running at once.
	Articles int
	// Sequential crawls partitions one at a time in the order returned by
	// SourceAdapter.Partitions, ignoring Partitions.
	Sequential bool
}

// Merge returns l with every positive field of o applied on top.
func (l Limits) Merge(o Limits) Limits {
	if o.Partitions > 0 {
		l.Partitions = o.Partitions
	}
	if o.Pages > 0 {
		l.Pages = o.Pages
	}
	if o.Articles > 0 {
		l.Articles = o.Articles
	}
	return l
}

// SourceAdapter supplies the URL templates, selectors and pagination rules
// of one news source.
type SourceAdapter interface {
	Name() SourceName

	// Partitions splits a date range into pagination scopes.
	Partitions(r DateRange) []Partition

	// ListingURL returns the URL of a listing page. Pages start at 1.
	ListingURL(p Partition, page int) string

	// ListingSelector matches the article entries of a listing page.
	// A page with no match does not exist.
	ListingSelector() string

	// ExtractArticles returns the article links of a listing page.
	// Entries without a link or a title are skipped.
	ExtractArticles(doc Document) []ArticleLink

	// CommentEndpoint finds the comment thread of an article page.
	// The bool result is false if the article has no comment section.
	CommentEndpoint(doc Document) (CommentEndpoint, bool)

	// CommentURL returns the comment API URL for a cursor.
	CommentURL(ep CommentEndpoint, cur CommentCursor) string

	CommentPolicy() CommentPolicy
	Decoder() CommentDecoder

	// Limits returns the default admission gate capacities.
	Limits() Limits
}

// SourceRegistry looks up source adapters by name.
type SourceRegistry interface {
	// Register adds an adapter, replacing one with the same name.
	Register(source SourceAdapter)

	// Lookup returns the adapter for name.
	// Returns EINVALID if no adapter is registered under name.
	Lookup(name SourceName) (SourceAdapter, error)

	// Names returns the registered source names in sorted order.
	Names() []SourceName
}

package mock

import "github.com/ethanol1310/hotnews"

var (
	_ hotnews.SourceAdapter  = (*SourceAdapter)(nil)
	_ hotnews.CommentDecoder = (*CommentDecoder)(nil)
	_ hotnews.CommentPolicy  = (*CommentPolicy)(nil)
)

// SourceAdapter is a mock implementation of hotnews.SourceAdapter.
type SourceAdapter struct {
	NameFn            func() hotnews.SourceName
	PartitionsFn      func(r hotnews.DateRange) []hotnews.Partition
	ListingURLFn      func(p hotnews.Partition, page int) string
	ListingSelectorFn func() string
	ExtractArticlesFn func(doc hotnews.Document) []hotnews.ArticleLink
	CommentEndpointFn func(doc hotnews.Document) (hotnews.CommentEndpoint, bool)
	CommentURLFn      func(ep hotnews.CommentEndpoint, cur hotnews.CommentCursor) string
	CommentPolicyFn   func() hotnews.CommentPolicy
	DecoderFn         func() hotnews.CommentDecoder
	LimitsFn          func() hotnews.Limits
}

func (s *SourceAdapter) Name() hotnews.SourceName {
	return s.NameFn()
}

func (s *SourceAdapter) Partitions(r hotnews.DateRange) []hotnews.Partition {
	return s.PartitionsFn(r)
}

func (s *SourceAdapter) ListingURL(p hotnews.Partition, page int) string {
	return s.ListingURLFn(p, page)
}

func (s *SourceAdapter) ListingSelector() string {
	return s.ListingSelectorFn()
}

func (s *SourceAdapter) ExtractArticles(doc hotnews.Document) []hotnews.ArticleLink {
	return s.ExtractArticlesFn(doc)
}

func (s *SourceAdapter) CommentEndpoint(doc hotnews.Document) (hotnews.CommentEndpoint, bool) {
	return s.CommentEndpointFn(doc)
}

func (s *SourceAdapter) CommentURL(ep hotnews.CommentEndpoint, cur hotnews.CommentCursor) string {
	return s.CommentURLFn(ep, cur)
}

func (s *SourceAdapter) CommentPolicy() hotnews.CommentPolicy {
	return s.CommentPolicyFn()
}

func (s *SourceAdapter) Decoder() hotnews.CommentDecoder {
	return s.DecoderFn()
}

func (s *SourceAdapter) Limits() hotnews.Limits {
	return s.LimitsFn()
}

// CommentDecoder is a mock implementation of hotnews.CommentDecoder.
type CommentDecoder struct {
	DecodeFn func(body string) ([]hotnews.Comment, error)
}

func (d *CommentDecoder) Decode(body string) ([]hotnews.Comment, error) {
	return d.DecodeFn(body)
}

// CommentPolicy is a mock implementation of hotnews.CommentPolicy.
type CommentPolicy struct {
	StartFn func() hotnews.CommentCursor
	NextFn  func(cur hotnews.CommentCursor, items int) (hotnews.CommentCursor, bool)
}

func (p *CommentPolicy) Start() hotnews.CommentCursor {
	return p.StartFn()
}

func (p *CommentPolicy) Next(cur hotnews.CommentCursor, items int) (hotnews.CommentCursor, bool) {
	return p.NextFn(cur, items)
}

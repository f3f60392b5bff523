package hotnews

// CommentEndpoint identifies an article's comment thread on its host API.
type CommentEndpoint struct {
	ObjectID   string
	ObjectType string
}

// CommentCursor addresses one comment page request.
// Offset and Limit are used by windowed APIs, Page by page-numbered APIs.
type CommentCursor struct {
	Offset int
	Limit  int
	Page   int
}

// CommentPolicy decides how comment pages are requested and when to stop.
type CommentPolicy interface {
	// Start returns the cursor of the first request.
	Start() CommentCursor

	// Next returns the cursor following cur given the number of items
	// the request for cur returned. The bool result is false when
	// aggregation should stop.
	Next(cur CommentCursor, items int) (CommentCursor, bool)
}

// Comment is a decoded comment with its reaction counters.
type Comment struct {
	ID        string
	Reactions map[string]int
}

// Weight returns the sum of the comment's reaction counters.
// Negative counters are ignored.
func (c Comment) Weight() int {
	var n int
	for _, v := range c.Reactions {
		if v > 0 {
			n += v
		}
	}
	return n
}

// CommentDecoder decodes a comment API payload.
type CommentDecoder interface {
	// Decode returns the comments of one page.
	// An error means the payload is malformed or has no comment list.
	Decode(body string) ([]Comment, error)
}

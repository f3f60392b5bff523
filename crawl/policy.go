package crawl

import "github.com/ethanol1310/hotnews"

// Compile-time interface verification.
var (
	_ hotnews.CommentPolicy = GrowingWindow{}
	_ hotnews.CommentPolicy = PageByPage{}
)

// GrowingWindow pages through a windowed comment API whose page size grows
// by Step every round: offset 0 limit Step, then offset Step limit 2*Step,
// then offset 3*Step limit 3*Step, and so on. It continues only while a
// request returns exactly as many items as its limit.
type GrowingWindow struct {
	Step int
}

// Start returns the first window.
func (w GrowingWindow) Start() hotnews.CommentCursor {
	return hotnews.CommentCursor{Offset: 0, Limit: w.Step}
}

// Next moves the window past the items just read and widens it by Step.
func (w GrowingWindow) Next(cur hotnews.CommentCursor, items int) (hotnews.CommentCursor, bool) {
	if cur.Limit <= 0 || items != cur.Limit {
		return cur, false
	}
	return hotnews.CommentCursor{
		Offset: cur.Offset + cur.Limit,
		Limit:  cur.Limit + w.Step,
	}, true
}

// PageByPage walks a page-numbered comment API from page 1 until a page
// comes back empty. It has no ceiling of its own; see Aggregator.MaxPages.
type PageByPage struct{}

// Start returns page 1.
func (PageByPage) Start() hotnews.CommentCursor {
	return hotnews.CommentCursor{Page: 1}
}

// Next returns the following page unless the current one was empty.
func (PageByPage) Next(cur hotnews.CommentCursor, items int) (hotnews.CommentCursor, bool) {
	if items == 0 {
		return cur, false
	}
	return hotnews.CommentCursor{Page: cur.Page + 1}, true
}

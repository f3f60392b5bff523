package mock

import "github.com/ethanol1310/hotnews"

var (
	_ hotnews.PageParser = (*PageParser)(nil)
	_ hotnews.Document   = (*Document)(nil)
	_ hotnews.Element    = (*Element)(nil)
)

// PageParser is a mock implementation of hotnews.PageParser.
type PageParser struct {
	ParseFn func(html string) (hotnews.Document, error)
}

func (p *PageParser) Parse(html string) (hotnews.Document, error) {
	return p.ParseFn(html)
}

// Document is a mock implementation of hotnews.Document.
type Document struct {
	FindFn func(selector string) []hotnews.Element
}

func (d *Document) Find(selector string) []hotnews.Element {
	return d.FindFn(selector)
}

// Element is a static implementation of hotnews.Element.
type Element struct {
	Attrs   map[string]string
	Content string
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Text() string {
	return e.Content
}

// Package goquery implements hotnews.PageParser on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ethanol1310/hotnews"
)

var _ hotnews.PageParser = (*Parser)(nil)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a queryable document.
func (p *Parser) Parse(html string) (hotnews.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, hotnews.Errorf(hotnews.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Document wraps a goquery document.
type Document struct {
	doc *goquery.Document
}

// Find returns all elements matching the CSS selector.
// An invalid selector matches nothing.
func (d *Document) Find(selector string) (elements []hotnews.Element) {
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		elements = append(elements, &Element{sel: sel})
	})
	return elements
}

// Element wraps a single-node goquery selection.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Text returns the whitespace-trimmed text content of the element.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

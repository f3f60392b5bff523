package hotnews

// PageParser turns raw HTML into a queryable document.
type PageParser interface {
	Parse(html string) (Document, error)
}

// Document is a parsed HTML page.
type Document interface {
	// Find returns all elements matching the CSS selector, in document order.
	Find(selector string) []Element
}

// Element is a single node of a parsed document.
type Element interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the combined text content of the element.
	Text() string
}

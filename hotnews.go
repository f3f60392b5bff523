// Package hotnews ranks the most discussed news articles of a date range.
// It crawls a news source's paginated listings, walks every article's
// comment thread, sums the reactions and reports the top articles.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package hotnews

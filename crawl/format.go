package crawl

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatResult summarizes a crawl result on one line.
func FormatResult(r *Result) string {
	s := fmt.Sprintf("%d articles from %d pages in %d partitions, %d comment pages",
		r.Articles, r.Pages, r.Partitions, r.CommentPages)
	if r.FailedArticles > 0 || r.FailedPartitions > 0 {
		s += fmt.Sprintf(" (%d articles failed, %d partitions failed)", r.FailedArticles, r.FailedPartitions)
	}
	return s
}

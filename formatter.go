package hotnews

import (
	"fmt"
	"strings"
)

// FormatRanking formats ranked articles one per line as
// "<rank>. <likes> likes  <title>  <url>".
// Uses the URL when the title is empty.
func FormatRanking(articles []*Article) string {
	if len(articles) == 0 {
		return ""
	}

	lines := make([]string, 0, len(articles))
	for i, a := range articles {
		title := a.Title
		if title == "" {
			title = a.URL
		}
		lines = append(lines, fmt.Sprintf("%d. %d likes  %s  %s", i+1, a.TotalLikes, title, a.URL))
	}

	return strings.Join(lines, "\n")
}

package hotnews

import (
	"context"
	"time"
)

// Article is a ranked news article. It is built once per processed article
// and never modified after it has been recorded.
type Article struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	TotalLikes int    `json:"totalLikes"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.TotalLikes < 0 {
		return Errorf(EINVALID, "article likes must not be negative")
	}
	return nil
}

// ArticleLink is an article reference extracted from a listing page.
type ArticleLink struct {
	URL   string
	Title string
}

// RankingStore collects articles from concurrent crawl workers and
// produces a ranked view on demand.
type RankingStore interface {
	// Record appends an article. Safe for concurrent use.
	Record(article *Article)

	// TopN returns at most n articles sorted by TotalLikes descending.
	// Articles with equal likes keep their insertion order.
	// The store itself is not modified.
	TopN(n int) []*Article

	// Len returns the number of recorded articles.
	Len() int
}

// Run is a saved ranking report.
type Run struct {
	ID        string     `json:"id"`
	Source    SourceName `json:"source"`
	Start     string     `json:"start"` // YYYY-MM-DD
	End       string     `json:"end"`   // YYYY-MM-DD
	Total     int        `json:"total"`
	Articles  []*Article `json:"articles,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	if r.Start == "" || r.End == "" {
		return Errorf(EINVALID, "run date range required")
	}
	for _, a := range r.Articles {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RunService persists ranking reports.
type RunService interface {
	// CreateRun saves a run and its ranked articles.
	// The ID and CreatedAt fields are assigned by the service.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its articles in rank order.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs without articles, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Source *SourceName `json:"source"`
	// URL restricts results to runs that ranked this article.
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package crawl

import (
	"cmp"
	"slices"
	"sync"

	"github.com/ethanol1310/hotnews"
)

var _ hotnews.RankingStore = (*Ranking)(nil)

// Ranking is an in-memory RankingStore safe for concurrent use.
type Ranking struct {
	mu       sync.Mutex
	articles []*hotnews.Article
}

// NewRanking creates an empty Ranking.
func NewRanking() *Ranking {
	return &Ranking{}
}

// Record adds an article. Articles are never deduplicated.
func (r *Ranking) Record(a *hotnews.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles = append(r.articles, a)
}

// Len returns the number of recorded articles.
func (r *Ranking) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.articles)
}

// TopN returns up to n articles ordered by total likes, highest first.
// Articles with equal likes keep their recording order.
// The stored sequence is not modified.
func (r *Ranking) TopN(n int) []*hotnews.Article {
	if n <= 0 {
		return nil
	}
	ranked := r.All()
	return ranked[:min(n, len(ranked))]
}

// All returns every recorded article in ranking order.
func (r *Ranking) All() []*hotnews.Article {
	r.mu.Lock()
	ranked := slices.Clone(r.articles)
	r.mu.Unlock()

	slices.SortStableFunc(ranked, func(a, b *hotnews.Article) int {
		return cmp.Compare(b.TotalLikes, a.TotalLikes)
	})
	return ranked
}

package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethanol1310/hotnews"
	"golang.org/x/sync/semaphore"
)

// Gate is a counting semaphore admitting a fixed number of concurrent
// units of work.
type Gate struct {
	name string
	size int
	sem  *semaphore.Weighted
}

// NewGate creates a Gate admitting size units at once.
// A size below 1 is treated as 1.
func NewGate(name string, size int) *Gate {
	if size < 1 {
		size = 1
	}
	return &Gate{
		name: name,
		size: size,
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the gate capacity.
func (g *Gate) Size() int {
	return g.size
}

// Acquire blocks until a unit of capacity is available.
// The returned release func gives the unit back; calling it more than
// once has no further effect.
func (g *Gate) Acquire(ctx context.Context) (release func(), err error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire %s gate: %w", g.name, err)
	}
	var once sync.Once
	return func() {
		once.Do(func() { g.sem.Release(1) })
	}, nil
}

// Do runs fn while holding a unit of capacity. The unit is released on
// every exit path. A panic in fn is returned as an EINTERNAL error.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	release, err := g.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return safely(func() error { return fn(ctx) })
}

// safely calls fn and converts a panic into an error.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = hotnews.Errorf(hotnews.EINTERNAL, "panic: %v", r)
		}
	}()
	return fn()
}

// Governor holds the admission gates of one crawl run.
// Gates are always acquired in the order partition, page, article.
type Governor struct {
	Partitions *Gate
	Articles   *Gate

	pages int
}

// NewGovernor creates the gates for the given limits.
func NewGovernor(limits hotnews.Limits) *Governor {
	return &Governor{
		Partitions: NewGate("partition", limits.Partitions),
		Articles:   NewGate("article", limits.Articles),
		pages:      limits.Pages,
	}
}

// PageGate creates the page gate of a partition.
// Each partition gets its own gate.
func (g *Governor) PageGate(p hotnews.Partition) *Gate {
	return NewGate("page "+p.Key(), g.pages)
}

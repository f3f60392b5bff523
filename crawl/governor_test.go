package crawl_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	t.Parallel()

	t.Run("treats non-positive size as one", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1, crawl.NewGate("page", 0).Size())
		assert.Equal(t, 1, crawl.NewGate("page", -3).Size())
		assert.Equal(t, 5, crawl.NewGate("page", 5).Size())
	})

	t.Run("never admits more than its size", func(t *testing.T) {
		t.Parallel()

		gate := crawl.NewGate("article", 2)
		var inFlight, peak atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = gate.Do(context.Background(), func(context.Context) error {
					n := inFlight.Add(1)
					defer inFlight.Add(-1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(2), peak.Load())
	})

	t.Run("releases capacity when fn fails", func(t *testing.T) {
		t.Parallel()

		gate := crawl.NewGate("article", 1)
		err := gate.Do(context.Background(), func(context.Context) error {
			return errors.New("boom")
		})
		require.EqualError(t, err, "boom")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		release, err := gate.Acquire(ctx)
		require.NoError(t, err)
		release()
	})

	t.Run("recovers a panic and releases capacity", func(t *testing.T) {
		t.Parallel()

		gate := crawl.NewGate("article", 1)
		err := gate.Do(context.Background(), func(context.Context) error {
			panic("bad markup")
		})
		assert.Equal(t, hotnews.EINTERNAL, hotnews.ErrorCode(err))
		assert.Contains(t, hotnews.ErrorMessage(err), "bad markup")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		release, err := gate.Acquire(ctx)
		require.NoError(t, err)
		release()
	})

	t.Run("fails to acquire when context ends", func(t *testing.T) {
		t.Parallel()

		gate := crawl.NewGate("partition", 1)
		release, err := gate.Acquire(context.Background())
		require.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		called := false
		err = gate.Do(ctx, func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, called)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		t.Parallel()

		gate := crawl.NewGate("page", 1)
		release, err := gate.Acquire(context.Background())
		require.NoError(t, err)
		release()
		release()

		first, err := gate.Acquire(context.Background())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = gate.Acquire(ctx)
		assert.Error(t, err, "double release must not add capacity")
		first()
	})
}

func TestGovernor(t *testing.T) {
	t.Parallel()

	t.Run("sizes gates from limits", func(t *testing.T) {
		t.Parallel()

		gov := crawl.NewGovernor(hotnews.Limits{Partitions: 1, Pages: 2, Articles: 5})

		assert.Equal(t, 1, gov.Partitions.Size())
		assert.Equal(t, 5, gov.Articles.Size())
		assert.Equal(t, 2, gov.PageGate(category("news")).Size())
	})

	t.Run("gives each partition its own page gate", func(t *testing.T) {
		t.Parallel()

		gov := crawl.NewGovernor(hotnews.Limits{Pages: 1})
		a := gov.PageGate(category("a"))
		b := gov.PageGate(category("b"))

		releaseA, err := a.Acquire(context.Background())
		require.NoError(t, err)
		defer releaseA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		releaseB, err := b.Acquire(ctx)
		require.NoError(t, err)
		releaseB()
	})
}

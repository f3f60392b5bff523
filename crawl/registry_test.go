package crawl_test

import (
	"testing"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/crawl"
	"github.com/ethanol1310/hotnews/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedSource(name hotnews.SourceName) *mock.SourceAdapter {
	return &mock.SourceAdapter{NameFn: func() hotnews.SourceName { return name }}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("looks up registered sources", func(t *testing.T) {
		t.Parallel()

		vne := namedSource(hotnews.SourceVnExpress)
		r := crawl.NewRegistry(vne, namedSource(hotnews.SourceTuoiTre))

		got, err := r.Lookup(hotnews.SourceVnExpress)
		require.NoError(t, err)
		assert.Same(t, vne, got)
	})

	t.Run("returns EINVALID for unknown source", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.NewRegistry().Lookup("thanhnien")
		assert.Equal(t, hotnews.EINVALID, hotnews.ErrorCode(err))
		assert.Contains(t, hotnews.ErrorMessage(err), "thanhnien")
	})

	t.Run("replaces a source with the same name", func(t *testing.T) {
		t.Parallel()

		replacement := namedSource(hotnews.SourceTuoiTre)
		r := crawl.NewRegistry(namedSource(hotnews.SourceTuoiTre))
		r.Register(replacement)

		got, err := r.Lookup(hotnews.SourceTuoiTre)
		require.NoError(t, err)
		assert.Same(t, replacement, got)
		assert.Len(t, r.Names(), 1)
	})

	t.Run("lists names sorted", func(t *testing.T) {
		t.Parallel()

		r := crawl.NewRegistry(namedSource(hotnews.SourceVnExpress), namedSource(hotnews.SourceTuoiTre))
		assert.Equal(t, []hotnews.SourceName{hotnews.SourceTuoiTre, hotnews.SourceVnExpress}, r.Names())
	})
}

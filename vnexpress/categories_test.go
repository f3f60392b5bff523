package vnexpress_test

import (
	"testing"

	"github.com/ethanol1310/hotnews"
	"github.com/ethanol1310/hotnews/vnexpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	t.Parallel()

	categories, err := vnexpress.DefaultCategories()

	require.NoError(t, err)
	assert.Len(t, categories, 16)
	assert.Equal(t, vnexpress.Category{ID: "1001005", Name: "Thời sự"}, categories[0])
}

func TestParseCategories(t *testing.T) {
	t.Parallel()

	t.Run("rejects category without id", func(t *testing.T) {
		t.Parallel()

		_, err := vnexpress.ParseCategories([]byte("- name: Xe\n"))
		assert.Equal(t, hotnews.EINVALID, hotnews.ErrorCode(err))
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()

		_, err := vnexpress.ParseCategories([]byte("- id: \"1\"\n  name: A\n- id: \"1\"\n  name: B\n"))
		assert.Equal(t, hotnews.EINVALID, hotnews.ErrorCode(err))
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		t.Parallel()

		_, err := vnexpress.ParseCategories([]byte("{not: [yaml"))
		assert.Error(t, err)
	})
}

package tuoitre_test

import (
	"testing"

	"github.com/ethanol1310/hotnews/tuoitre"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	d := &tuoitre.Decoder{}

	t.Run("sums reaction counters of each comment", func(t *testing.T) {
		t.Parallel()

		comments, err := d.Decode(`{"Success":true,"Data":"[{\"id\":901,\"reactions\":{\"1\":7,\"3\":2}},{\"id\":902,\"reactions\":{}}]"}`)

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "901", comments[0].ID)
		assert.Equal(t, 9, comments[0].Weight())
		assert.Zero(t, comments[1].Weight())
	})

	t.Run("treats an empty list as the last page", func(t *testing.T) {
		t.Parallel()

		comments, err := d.Decode(`{"Success":true,"Data":"[]"}`)
		require.NoError(t, err)
		assert.Empty(t, comments)

		comments, err = d.Decode(`{"Success":true,"Data":""}`)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("rejects payload without data", func(t *testing.T) {
		t.Parallel()

		_, err := d.Decode(`{"Success":false}`)
		assert.Error(t, err)
	})

	t.Run("rejects malformed inner list", func(t *testing.T) {
		t.Parallel()

		_, err := d.Decode(`{"Success":true,"Data":"[{"}`)
		assert.Error(t, err)
	})
}

package prototype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stylealign/mask"
)

func TestNewBank(t *testing.T) {
	t.Run("Normalizes and copies rows", func(t *testing.T) {
		rows := [][]float64{{3, 4}, {0, 2}}
		b, err := NewBank(rows)
		require.NoError(t, err)

		assert.Equal(t, 2, b.Len())
		assert.Equal(t, 2, b.Dim())
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, b.Row(0), 1e-12)
		assert.InDeltaSlice(t, []float64{0, 1}, b.Row(1), 1e-12)

		rows[0][0] = 100
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, b.Row(0), 1e-12)

		r := b.Row(0)
		r[0] = -1
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, b.Row(0), 1e-12)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewBank(nil)
		assert.ErrorIs(t, err, ErrEmptyBank)

		_, err = NewBank([][]float64{{}})
		assert.ErrorIs(t, err, ErrEmptyBank)
	})

	t.Run("Ragged rows", func(t *testing.T) {
		_, err := NewBank([][]float64{{1, 0}, {1, 0, 0}})
		require.ErrorIs(t, err, ErrDimensionMismatch)

		var dm *DimensionMismatchError
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)
	})

	t.Run("Zero row", func(t *testing.T) {
		_, err := NewBank([][]float64{{1, 0}, {0, 0}})
		require.ErrorIs(t, err, ErrZeroVector)

		var zv *ZeroVectorError
		require.ErrorAs(t, err, &zv)
		assert.Equal(t, 1, zv.Row)
	})
}

func TestBank_Scores(t *testing.T) {
	b, err := NewBank([][]float64{{1, 0}, {0, 1}, {3, 4}})
	require.NoError(t, err)

	scores, err := b.Scores([]float64{1, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0.6}, scores, 1e-12)

	_, err = b.Scores([]float64{1, 0, 0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBank_Stacks(t *testing.T) {
	b, err := NewBank([][]float64{{1, 0}, {0, 1}, {3, 4}})
	require.NoError(t, err)

	t.Run("Stack", func(t *testing.T) {
		rows := b.Stack(mask.Of(2, 0))
		require.Len(t, rows, 2)
		assert.InDeltaSlice(t, []float64{1, 0}, rows[0], 1e-12)
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, rows[1], 1e-12)
	})

	t.Run("WeightedStack keeps sign and renormalizes", func(t *testing.T) {
		rows, err := b.WeightedStack(mask.Of(0, 2), []float64{-2, 5, 0.5})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.InDeltaSlice(t, []float64{-1, 0}, rows[0], 1e-12)
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, rows[1], 1e-12)
	})

	t.Run("Zero weight yields zero row", func(t *testing.T) {
		rows, err := b.WeightedStack(mask.Of(1), []float64{1, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, [][]float64{{0, 0}}, rows)
	})

	t.Run("Empty mask", func(t *testing.T) {
		rows, err := b.WeightedStack(mask.New(), []float64{1, 1, 1})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Weight length mismatch", func(t *testing.T) {
		_, err := b.WeightedStack(mask.Of(0), []float64{1})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

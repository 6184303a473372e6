package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	e0 := []float64{1, 0}
	e1 := []float64{0, 1}

	t.Run("Mixes image manifold", func(t *testing.T) {
		c, err := Compose(e0, e0, e0, [][]float64{e1}, ComposeOptions{TargetWeight: 2})
		require.NoError(t, err)

		s := math.Sqrt(5)
		assert.InDeltaSlice(t, []float64{2 / s, 1 / s}, c.Direction, 1e-12)
		assert.InDelta(t, 1/s, c.ImageProportion, 1e-12)
	})

	t.Run("Gamma uses absolute image text alignment", func(t *testing.T) {
		image := []float64{-0.5, math.Sqrt(3) / 2}
		c, err := Compose(e0, image, e0, [][]float64{e1}, ComposeOptions{TargetWeight: 2})
		require.NoError(t, err)

		// gamma = |2 / -0.5| = 4
		s := math.Sqrt(17)
		assert.InDeltaSlice(t, []float64{4 / s, 1 / s}, c.Direction, 1e-12)
	})

	t.Run("Exclude image", func(t *testing.T) {
		c, err := Compose([]float64{3, 4}, e0, e0, [][]float64{e1}, ComposeOptions{TargetWeight: 2, ExcludeImage: true})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.6, 0.8}, c.Direction, 1e-12)
		assert.Zero(t, c.ImageProportion)
	})

	t.Run("No positives", func(t *testing.T) {
		c, err := Compose(e1, e0, e0, nil, ComposeOptions{TargetWeight: 2})
		require.NoError(t, err)
		assert.InDeltaSlice(t, e1, c.Direction, 1e-12)
		assert.Zero(t, c.ImageProportion)
	})

	t.Run("Orthogonal image and text", func(t *testing.T) {
		_, err := Compose(e0, e1, e0, nil, ComposeOptions{TargetWeight: 2})
		assert.ErrorIs(t, err, ErrDegenerateDirection)
	})

	t.Run("Dimension mismatch", func(t *testing.T) {
		_, err := Compose(e0, []float64{1}, e0, nil, ComposeOptions{})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestManifold(t *testing.T) {
	m := Manifold([][]float64{{1, 0}, {0, 1}}, 2)
	assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, m, 1e-12)

	assert.Equal(t, []float64{0, 0}, Manifold(nil, 2))
	assert.Equal(t, []float64{0, 0}, Manifold([][]float64{{1, 0}, {-1, 0}}, 2))
}

package outlier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLOF_Detect(t *testing.T) {
	values := []float64{0, 0.25, 0.5, 0.75, 1, 10}
	lof := NewLOF(3)

	t.Run("Auto", func(t *testing.T) {
		flags, err := lof.Detect(values, Auto)
		require.NoError(t, err)
		assert.Equal(t, []bool{false, false, false, false, false, true}, flags)
	})

	t.Run("Fraction", func(t *testing.T) {
		flags, err := lof.Detect(values, Fraction(0.2))
		require.NoError(t, err)
		assert.Equal(t, []bool{false, false, false, false, false, true}, flags)
	})

	t.Run("Uniform grid has unit factors", func(t *testing.T) {
		nof, err := lof.NegativeOutlierFactors(values)
		require.NoError(t, err)
		for i := range 5 {
			assert.InDelta(t, -1.0, nof[i], 1e-9)
		}
		assert.Less(t, nof[5], -10.0)
	})

	t.Run("Invalid contamination", func(t *testing.T) {
		_, err := lof.Detect(values, Fraction(0.7))
		assert.ErrorIs(t, err, ErrInvalidContamination)
	})
}

func TestLOF_Degenerate(t *testing.T) {
	lof := NewLOF(10)
	_, err := lof.Detect([]float64{1, 2, 3}, Auto)
	require.ErrorIs(t, err, ErrDegenerateInput)

	var de *DegenerateInputError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 3, de.Values)
	assert.Equal(t, 10, de.Neighbors)

	// Exactly the neighborhood size is accepted with k clamped to n-1.
	_, err = lof.Detect(make([]float64, 10), Auto)
	assert.NoError(t, err)
}

func TestSigmaOnly(t *testing.T) {
	flags, err := SigmaOnly{}.Detect([]float64{1, 2}, Auto)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, flags)
}

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	assert.InDelta(t, 1.0, percentile(x, 0), 1e-12)
	assert.InDelta(t, 4.0, percentile(x, 100), 1e-12)
	assert.InDelta(t, 2.5, percentile(x, 50), 1e-12)
	assert.InDelta(t, 1.3, percentile(x, 10), 1e-12)
}

func TestParseContamination(t *testing.T) {
	c, err := ParseContamination("auto")
	require.NoError(t, err)
	assert.True(t, c.IsAuto())
	assert.Equal(t, "auto", c.String())

	c, err = ParseContamination("0.1")
	require.NoError(t, err)
	assert.False(t, c.IsAuto())
	assert.Equal(t, 0.1, c.Value())

	_, err = ParseContamination("0.9")
	assert.ErrorIs(t, err, ErrInvalidContamination)

	_, err = ParseContamination("lots")
	assert.Error(t, err)
}

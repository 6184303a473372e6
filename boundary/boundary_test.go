package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fixture returns a 5-channel bank in 2 dimensions whose alignments with
// e0 are {0.5, -1, 0.25, 0, 0.75}.
func fixture(t *testing.T, std []float64) (*ChannelBank, Layout) {
	t.Helper()
	m := mat.NewDense(5, 2, []float64{
		0.5, 0,
		-1, 0,
		0.25, 1,
		0, 1,
		0.75, 0,
	})
	bank, err := NewChannelBank(m, std)
	require.NoError(t, err)
	return bank, LayoutOf(sampleStyle(), SkipToRGB)
}

func TestNewChannelBank(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{1, 0, 0, 2, 3, 4})
	std := []float64{1, 2, 3}
	bank, err := NewChannelBank(m, std)
	require.NoError(t, err)
	assert.Equal(t, 3, bank.Len())
	assert.Equal(t, 2, bank.Dim())

	// Inputs are copied.
	m.Set(0, 0, 9)
	std[0] = 9
	align, err := bank.Alignment([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 3}, align)
	assert.Equal(t, []float64{1, 2, 3}, bank.std)

	unit, err := NewChannelBank(mat.NewDense(2, 5, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, unit.Len())
	assert.Equal(t, 5, unit.Dim())
	assert.Equal(t, []float64{1, 1}, unit.std)
}

func TestBuilder_TopK(t *testing.T) {
	bank, layout := fixture(t, nil)

	b, err := NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{TopK: 2})
	require.NoError(t, err)

	// Channels 1 (-1) and 4 (0.75) win; 4 is layer 2 channel 2.
	assert.Equal(t, 2, b.NumChanged())
	assert.Equal(t, []Offset{
		{Layer: 0, Channel: 1, Value: -1},
		{Layer: 2, Channel: 2, Value: 0.75},
	}, b.Offsets())
	assert.Equal(t, 0.75, b.At(2, 2))
	assert.Zero(t, b.At(0, 0))
}

func TestBuilder_Threshold(t *testing.T) {
	bank, layout := fixture(t, []float64{2, 2, 2, 2, 2})

	b, err := NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{TopK: 1, Threshold: 0.5})
	require.NoError(t, err)

	// Threshold overrides top-k and is inclusive.
	assert.Equal(t, []Offset{
		{Layer: 0, Channel: 0, Value: 1},
		{Layer: 0, Channel: 1, Value: -2},
		{Layer: 2, Channel: 2, Value: 1.5},
	}, b.Offsets())
}

func TestBuilder_NoOp(t *testing.T) {
	bank, layout := fixture(t, nil)

	t.Run("Zero top-k", func(t *testing.T) {
		b, err := NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{TopK: 0})
		require.NoError(t, err)
		assert.True(t, b.IsZero())
		assert.Zero(t, b.NumChanged())

		style := sampleStyle()
		out, err := Apply(style, b, DefaultStep)
		require.NoError(t, err)
		assert.True(t, out.Equal(style))
	})

	t.Run("Nothing passes threshold", func(t *testing.T) {
		b, err := NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{Threshold: 10})
		require.NoError(t, err)
		assert.True(t, b.IsZero())
	})

	t.Run("Zero alignments", func(t *testing.T) {
		b, err := NewBuilder().Build(bank, []float64{0, 0}, layout, Selection{TopK: 3})
		require.NoError(t, err)
		assert.True(t, b.IsZero())
	})

	t.Run("Zero value", func(t *testing.T) {
		var b Boundary
		assert.True(t, b.IsZero())
		assert.Empty(t, b.Offsets())
	})
}

func TestBuilder_Errors(t *testing.T) {
	bank, layout := fixture(t, nil)

	_, err := NewBuilder().Build(bank, []float64{1, 0, 0}, layout, Selection{TopK: 1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewBuilder().Build(bank, []float64{1, 0}, LayoutOf(sampleStyle(), nil), Selection{TopK: 1})
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	_, err = NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{TopK: -1})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = NewChannelBank(mat.NewDense(2, 2, nil), []float64{1})
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestApply(t *testing.T) {
	bank, layout := fixture(t, nil)
	b, err := NewBuilder().Build(bank, []float64{1, 0}, layout, Selection{TopK: 2})
	require.NoError(t, err)

	style := sampleStyle()
	out, err := Apply(style, b, DefaultStep)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, -5}, out[0].Values)
	assert.Equal(t, []float64{9, 9, 9}, out[1].Values)
	assert.Equal(t, []float64{1, 1, 4.75}, out[2].Values)
	// The input is left untouched.
	assert.Equal(t, []float64{0, 0}, style[0].Values)

	_, err = Apply(style[:1], b, DefaultStep)
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

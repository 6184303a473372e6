package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStyle() StyleSpace {
	return StyleSpace{
		{Name: "conv1", Values: []float64{0, 0}},
		{Name: "torgb1", Values: []float64{9, 9, 9}},
		{Name: "conv2", Values: []float64{1, 1, 1}},
	}
}

func TestLayoutOf(t *testing.T) {
	style := sampleStyle()

	t.Run("Skip RGB layers", func(t *testing.T) {
		l := LayoutOf(style, SkipToRGB)
		assert.Equal(t, 5, l.Len())

		tests := []struct {
			flat, layer, channel int
		}{
			{0, 0, 0},
			{1, 0, 1},
			{2, 2, 0},
			{4, 2, 2},
		}
		for _, tt := range tests {
			layer, channel, ok := l.Locate(tt.flat)
			require.True(t, ok)
			assert.Equal(t, tt.layer, layer, "flat %d", tt.flat)
			assert.Equal(t, tt.channel, channel, "flat %d", tt.flat)
		}

		_, _, ok := l.Locate(5)
		assert.False(t, ok)
		_, _, ok = l.Locate(-1)
		assert.False(t, ok)
	})

	t.Run("Keep every layer", func(t *testing.T) {
		l := LayoutOf(style, nil)
		assert.Equal(t, 8, l.Len())
		layer, channel, ok := l.Locate(4)
		require.True(t, ok)
		assert.Equal(t, 1, layer)
		assert.Equal(t, 2, channel)
	})

	t.Run("Check", func(t *testing.T) {
		l := LayoutOf(style, SkipToRGB)
		require.NoError(t, l.Check(style))

		other := sampleStyle()
		other[2].Values = other[2].Values[:2]
		err := l.Check(other)
		require.ErrorIs(t, err, ErrLayoutMismatch)

		var lm *LayoutMismatchError
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, "conv2", lm.Layer)
		assert.Equal(t, 3, lm.Expected)
		assert.Equal(t, 2, lm.Actual)
	})
}

func TestStyleSpace(t *testing.T) {
	s := sampleStyle()
	c := s.Clone()
	c[0].Values[0] = 7

	assert.Equal(t, 0.0, s[0].Values[0])
	assert.False(t, s.Equal(c))
	assert.True(t, s.Equal(sampleStyle()))
	assert.Equal(t, 8, s.NumChannels())
	assert.Equal(t, []string{"conv1", "torgb1", "conv2"}, s.Names())
}

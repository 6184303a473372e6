package evaluate

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupDelta(t *testing.T) {
	before := []float64{1, 0}
	after := []float64{0, 1}

	d, err := GroupDelta(before, after, [][]float64{{0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	// (1 - 0) + (0 - 1) + (1 - 1) over 3.
	assert.InDelta(t, 0.0, d, 1e-12)

	d, err = GroupDelta(before, after, [][]float64{{0, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-12)

	d, err = GroupDelta(before, after, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, err = GroupDelta(before, after, [][]float64{{1}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEvaluator_Evaluate(t *testing.T) {
	ctx := context.Background()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	scorer := IdentityFunc(func(context.Context, image.Image, image.Image) (float64, error) {
		return 0.8, nil
	})

	in := Input{
		Before:      []float64{1, 0},
		After:       []float64{0, 1},
		Core:        [][]float64{{0, 1}},
		Unwanted:    [][]float64{{1, 0}},
		Positive:    nil,
		ImageBefore: img,
		ImageAfter:  img,
	}

	t.Run("Face dataset", func(t *testing.T) {
		s, err := New(scorer, WithDataset("ffhq")).Evaluate(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 0.8, s.Identity)
		assert.InDelta(t, 1.0, s.Core, 1e-12)
		// Unwanted drift is -1 and is reported as a magnitude.
		assert.InDelta(t, 1.0, s.Unwanted, 1e-12)
		assert.Equal(t, 0.0, s.Positive)
	})

	t.Run("Non-face dataset skips identity", func(t *testing.T) {
		called := false
		spy := IdentityFunc(func(context.Context, image.Image, image.Image) (float64, error) {
			called = true
			return 1, nil
		})
		s, err := New(spy, WithDataset("AFHQ")).Evaluate(ctx, in)
		require.NoError(t, err)
		assert.False(t, called)
		assert.Zero(t, s.Identity)
	})

	t.Run("Core keeps its sign", func(t *testing.T) {
		rev := in
		rev.Before, rev.After = in.After, in.Before
		s, err := New(nil).Evaluate(ctx, rev)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, s.Core, 1e-12)
	})

	t.Run("Scorer failure", func(t *testing.T) {
		boom := errors.New("boom")
		failing := IdentityFunc(func(context.Context, image.Image, image.Image) (float64, error) {
			return 0, boom
		})
		_, err := New(failing).Evaluate(ctx, in)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Mismatched embeddings", func(t *testing.T) {
		bad := in
		bad.After = []float64{1}
		_, err := New(nil).Evaluate(ctx, bad)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestHasFaces(t *testing.T) {
	assert.True(t, HasFaces("ffhq"))
	assert.True(t, HasFaces(""))
	assert.False(t, HasFaces("afhq"))
	assert.False(t, HasFaces("AFHQ"))
}

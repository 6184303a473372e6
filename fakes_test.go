package stylealign

import (
	"context"
	"errors"
	"image"
	"image/color"
	"slices"
	"sync/atomic"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign/boundary"
	"github.com/hupe1980/stylealign/mask"
	"github.com/hupe1980/stylealign/prototype"
)

// styleImage carries the first style layer so the fake embedder can read it back.
type styleImage struct {
	values []float64
}

func (s *styleImage) ColorModel() color.Model { return color.GrayModel }
func (s *styleImage) Bounds() image.Rectangle { return image.Rect(0, 0, len(s.values), 1) }
func (s *styleImage) At(x, _ int) color.Color {
	return color.Gray{Y: uint8(min(max(s.values[x]*32, 0), 255))}
}

var errBadLatent = errors.New("bad latent")

// fakeGenerator uses []float64 latents as the values of a "conv1" layer and
// adds one RGB layer that has no channel bank rows.
type fakeGenerator struct {
	encodes atomic.Int64
}

func (g *fakeGenerator) Encode(_ context.Context, latent Latent) (boundary.StyleSpace, Noise, error) {
	g.encodes.Add(1)
	v, ok := latent.([]float64)
	if !ok {
		return nil, nil, errBadLatent
	}
	return boundary.StyleSpace{
		{Name: "conv1", Values: slices.Clone(v)},
		{Name: "torgb1", Values: []float64{0}},
	}, "noise", nil
}

func (g *fakeGenerator) Decode(_ context.Context, style boundary.StyleSpace, _ Latent, noise Noise) (image.Image, error) {
	if noise != "noise" {
		return nil, errors.New("lost noise")
	}
	return &styleImage{values: slices.Clone(style[0].Values)}, nil
}

type fakeEmbedder struct {
	texts map[string][]float64
	dim   int
}

func (e *fakeEmbedder) EncodeText(_ context.Context, text string) ([]float64, error) {
	v, ok := e.texts[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return slices.Clone(v), nil
}

func (e *fakeEmbedder) EncodeImage(_ context.Context, img image.Image) ([]float64, error) {
	s, ok := img.(*styleImage)
	if !ok {
		return nil, errors.New("unexpected image")
	}
	if e.dim != 0 {
		return make([]float64, e.dim), nil
	}
	return slices.Clone(s.values), nil
}

type identityConst float64

func (c identityConst) Score(context.Context, image.Image, image.Image) (float64, error) {
	return float64(c), nil
}

type fixedSelector struct {
	core, positive mask.IndexMask
	err            error
}

func (s fixedSelector) SelectCore([]float64) (mask.IndexMask, error)     { return s.core, s.err }
func (s fixedSelector) SelectPositive([]float64) (mask.IndexMask, error) { return s.positive, nil }

func identityRows(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	return rows
}

type world struct {
	gen      *fakeGenerator
	emb      *fakeEmbedder
	bank     *prototype.Bank
	channels *boundary.ChannelBank
}

// newWorld builds a 4-dimensional setup where channel i of conv1 moves
// embedding axis i.
func newWorld(t require.TestingT) *world {
	bank, err := prototype.NewBank(identityRows(4))
	require.NoError(t, err)
	channels, err := boundary.NewChannelBank(mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}), nil)
	require.NoError(t, err)
	return &world{
		gen: &fakeGenerator{},
		emb: &fakeEmbedder{texts: map[string][]float64{
			"grey hair": {1, 0, 0, 0},
			"zero":      {0, 0, 0, 0},
		}},
		bank:     bank,
		channels: channels,
	}
}

func (w *world) editor(t require.TestingT, optFns ...Option) *Editor {
	base := []Option{
		WithSelector(fixedSelector{core: mask.Of(0), positive: mask.Of(1)}),
		WithIdentityScorer(identityConst(0.9)),
	}
	e, err := NewEditor(w.gen, w.emb, w.bank, w.channels, append(base, optFns...)...)
	require.NoError(t, err)
	return e
}

func sourceLatent() []float64 {
	return []float64{0.2, 1, 0.5, 0.5}
}

package boundary

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Defaults for selection and application.
const (
	DefaultTopK = 50
	DefaultStep = 5.0
)

// ChannelBank holds one embedding-space row per flat style channel and the
// per-channel style deviation used to scale offsets. It is immutable.
type ChannelBank struct {
	m   *mat.Dense
	std []float64
}

// NewChannelBank copies m and std. A nil std scales every channel by 1.
func NewChannelBank(m mat.Matrix, std []float64) (*ChannelBank, error) {
	r, _ := m.Dims()
	if std != nil && len(std) != r {
		return nil, &LayoutMismatchError{Expected: r, Actual: len(std)}
	}
	if std == nil {
		std = make([]float64, r)
		for i := range std {
			std[i] = 1
		}
	} else {
		std = slices.Clone(std)
	}
	return &ChannelBank{m: mat.DenseCopyOf(m), std: std}, nil
}

// Len returns the number of channels.
func (b *ChannelBank) Len() int {
	r, _ := b.m.Dims()
	return r
}

// Dim returns the embedding dimension.
func (b *ChannelBank) Dim() int {
	_, c := b.m.Dims()
	return c
}

// Alignment returns the dot product of every channel row with direction.
func (b *ChannelBank) Alignment(direction []float64) ([]float64, error) {
	if len(direction) != b.Dim() {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, b.Dim(), len(direction))
	}
	out := make([]float64, b.Len())
	mat.NewVecDense(len(out), out).MulVec(b.m, mat.NewVecDense(len(direction), direction))
	return out, nil
}

// Selection chooses which channels move. A non-zero Threshold keeps every
// channel whose absolute alignment is at least Threshold and overrides TopK.
type Selection struct {
	TopK      int
	Threshold float64
}

// Validate checks the selection parameters.
func (s Selection) Validate() error {
	if s.TopK < 0 {
		return fmt.Errorf("%w: top_k %d", ErrInvalidSelection, s.TopK)
	}
	if s.Threshold < 0 || math.IsNaN(s.Threshold) {
		return fmt.Errorf("%w: threshold %v", ErrInvalidSelection, s.Threshold)
	}
	return nil
}

// Offset is one signed change of a style channel.
type Offset struct {
	Layer   int
	Channel int
	Value   float64
}

// Boundary is a sparse set of channel offsets, ordered by layer and channel.
// The zero value moves nothing.
type Boundary struct {
	offsets []Offset
}

// IsZero reports whether b changes no channel.
func (b Boundary) IsZero() bool {
	return len(b.offsets) == 0
}

// NumChanged returns the number of channels b moves.
func (b Boundary) NumChanged() int {
	return len(b.offsets)
}

// Offsets returns a copy of the offsets.
func (b Boundary) Offsets() []Offset {
	return slices.Clone(b.offsets)
}

// At returns the offset of one channel, or 0.
func (b Boundary) At(layer, channel int) float64 {
	i, ok := slices.BinarySearchFunc(b.offsets, Offset{Layer: layer, Channel: channel}, compareOffset)
	if !ok {
		return 0
	}
	return b.offsets[i].Value
}

func compareOffset(a, b Offset) int {
	if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
		return c
	}
	return cmp.Compare(a.Channel, b.Channel)
}

type options struct {
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*options)

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Builder turns directions into boundaries.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(optFns ...Option) *Builder {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{logger: o.logger}
}

// Build selects channels by alignment with direction and returns their
// offsets: alignment / max|selected alignment| · std. When no channel is
// selected, or every selected alignment is zero, the result is the zero Boundary.
func (b *Builder) Build(bank *ChannelBank, direction []float64, layout Layout, sel Selection) (Boundary, error) {
	if err := sel.Validate(); err != nil {
		return Boundary{}, err
	}
	if layout.Len() != bank.Len() {
		return Boundary{}, &LayoutMismatchError{Expected: bank.Len(), Actual: layout.Len()}
	}
	align, err := bank.Alignment(direction)
	if err != nil {
		return Boundary{}, err
	}

	selected := selectChannels(align, sel)

	var maxAbs float64
	for _, i := range selected {
		maxAbs = math.Max(maxAbs, math.Abs(align[i]))
	}
	if maxAbs == 0 {
		b.logger.Debug("boundary is empty", "top_k", sel.TopK, "threshold", sel.Threshold)
		return Boundary{}, nil
	}

	offsets := make([]Offset, 0, len(selected))
	for _, i := range selected {
		v := align[i] / maxAbs * bank.std[i]
		if v == 0 {
			continue
		}
		layer, channel, _ := layout.Locate(i)
		offsets = append(offsets, Offset{Layer: layer, Channel: channel, Value: v})
	}
	slices.SortFunc(offsets, compareOffset)

	b.logger.Debug("boundary built",
		"changed", len(offsets),
		"max_alignment", maxAbs,
	)
	return Boundary{offsets: offsets}, nil
}

// selectChannels returns flat channel indices chosen by sel.
func selectChannels(align []float64, sel Selection) []int {
	if sel.Threshold != 0 {
		var out []int
		for i, a := range align {
			if math.Abs(a) >= sel.Threshold {
				out = append(out, i)
			}
		}
		return out
	}

	k := min(sel.TopK, len(align))
	if k <= 0 {
		return nil
	}
	order := make([]int, len(align))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(math.Abs(align[b]), math.Abs(align[a]))
	})
	return order[:k]
}

// Apply returns a copy of style with alpha·offset added to every channel b moves.
func Apply(style StyleSpace, b Boundary, alpha float64) (StyleSpace, error) {
	out := style.Clone()
	for _, o := range b.offsets {
		if o.Layer >= len(out) || o.Channel >= len(out[o.Layer].Values) {
			return nil, fmt.Errorf("%w: offset at layer %d channel %d is outside the style space", ErrLayoutMismatch, o.Layer, o.Channel)
		}
		out[o.Layer].Values[o.Channel] += alpha * o.Value
	}
	return out, nil
}

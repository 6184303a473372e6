package stylealign

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/stylealign/boundary"
	"github.com/hupe1980/stylealign/disentangle"
	"github.com/hupe1980/stylealign/distance"
	"github.com/hupe1980/stylealign/evaluate"
	"github.com/hupe1980/stylealign/prototype"
	"github.com/hupe1980/stylealign/resample"
)

// Method selects how an edit direction is chosen.
type Method string

const (
	// MethodBaseline moves along the normalized target text embedding.
	MethodBaseline Method = "baseline"
	// MethodRandom resamples the core prototypes and mixes in the image manifold.
	MethodRandom Method = "random"
)

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(s)); m {
	case MethodBaseline, MethodRandom:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// Target is a prepared edit target.
type Target struct {
	Text      string
	Embedding []float64
}

// Attempt is the outcome of one edit of one latent.
type Attempt struct {
	Result          *disentangle.Result
	Direction       []float64
	ImageProportion float64
	Boundary        boundary.Boundary
	Scores          evaluate.Scores
	Original        image.Image
	Edited          image.Image
	Duration        time.Duration
}

// Editor performs single edit attempts. It holds only immutable state and
// may be shared between goroutines.
type Editor struct {
	gen      Generator
	emb      Embedder
	channels *boundary.ChannelBank

	disentangler *disentangle.Disentangler
	resampler    *resample.Resampler
	builder      *boundary.Builder
	evaluator    *evaluate.Evaluator
	limiter      *rate.Limiter

	opts options
}

// NewEditor creates an Editor over a prototype bank and a channel bank.
func NewEditor(gen Generator, emb Embedder, bank *prototype.Bank, channels *boundary.ChannelBank, optFns ...Option) (*Editor, error) {
	o := applyOptions(optFns)
	if _, err := ParseMethod(string(o.method)); err != nil {
		return nil, err
	}
	if err := o.selection.Validate(); err != nil {
		return nil, err
	}
	if channels.Dim() != bank.Dim() {
		return nil, &prototype.DimensionMismatchError{Expected: bank.Dim(), Actual: channels.Dim()}
	}

	slogger := o.logger.Logger
	selector := o.selector
	if selector == nil {
		selector = disentangle.NewOutlierSelector(nil)
	}
	resampleOpts := []resample.Option{resample.WithLogger(slogger)}
	if o.seed != nil {
		resampleOpts = append(resampleOpts, resample.WithSeed(*o.seed))
	}

	return &Editor{
		gen:          gen,
		emb:          emb,
		channels:     channels,
		disentangler: disentangle.New(bank, disentangle.WithSelector(selector), disentangle.WithLogger(slogger)),
		resampler:    resample.New(resampleOpts...),
		builder:      boundary.NewBuilder(boundary.WithLogger(slogger)),
		evaluator:    evaluate.New(o.identity, evaluate.WithDataset(o.dataset)),
		limiter:      o.limiter,
		opts:         o,
	}, nil
}

// Method returns the configured method.
func (e *Editor) Method() Method {
	return e.opts.method
}

func (e *Editor) wait(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}
	return e.limiter.Wait(ctx)
}

// Prepare embeds the target text once for all attempts.
func (e *Editor) Prepare(ctx context.Context, text string) (Target, error) {
	if err := e.wait(ctx); err != nil {
		return Target{}, err
	}
	emb, err := e.emb.EncodeText(ctx, text)
	if err != nil {
		return Target{}, collaboratorError("encode text", err)
	}
	emb, err = e.checkEmbedding("encode text", emb)
	if err != nil {
		return Target{}, err
	}
	return Target{Text: text, Embedding: emb}, nil
}

func (e *Editor) checkEmbedding(op string, v []float64) ([]float64, error) {
	dim := e.disentangler.Bank().Dim()
	if len(v) != dim {
		return nil, collaboratorError(op, &prototype.DimensionMismatchError{Expected: dim, Actual: len(v)})
	}
	out, ok := distance.NormalizeL2Copy(v)
	if !ok {
		return nil, collaboratorError(op, prototype.ErrZeroVector)
	}
	return out, nil
}

func (e *Editor) encodeImage(ctx context.Context, img image.Image) ([]float64, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	v, err := e.emb.EncodeImage(ctx, img)
	if err != nil {
		return nil, collaboratorError("encode image", err)
	}
	return e.checkEmbedding("encode image", v)
}

func (e *Editor) decode(ctx context.Context, style boundary.StyleSpace, latent Latent, noise Noise) (image.Image, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	img, err := e.gen.Decode(ctx, style, latent, noise)
	if err != nil {
		return nil, collaboratorError("decode", err)
	}
	if img == nil {
		return nil, collaboratorError("decode", errors.New("generator returned no image"))
	}
	return img, nil
}

// Edit runs one attempt: encode, decode the original, disentangle, choose a
// direction, build and apply the boundary, decode the edit and evaluate it.
func (e *Editor) Edit(ctx context.Context, target Target, latent Latent) (*Attempt, error) {
	start := time.Now()
	a, err := e.edit(ctx, target, latent)
	var (
		changed int
		scores  evaluate.Scores
	)
	if a != nil {
		a.Duration = time.Since(start)
		changed = a.Boundary.NumChanged()
		scores = a.Scores
	}
	e.opts.metricsCollector.RecordAttempt(time.Since(start), changed, scores, err)
	return a, err
}

func (e *Editor) edit(ctx context.Context, target Target, latent Latent) (*Attempt, error) {
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	style, noise, err := e.gen.Encode(ctx, latent)
	if err != nil {
		return nil, collaboratorError("encode", err)
	}
	layout := boundary.LayoutOf(style, e.opts.skipLayer)
	if layout.Len() != e.channels.Len() {
		return nil, collaboratorError("encode", &boundary.LayoutMismatchError{Expected: e.channels.Len(), Actual: layout.Len()})
	}

	original, err := e.decode(ctx, style, latent, noise)
	if err != nil {
		return nil, err
	}
	before, err := e.encodeImage(ctx, original)
	if err != nil {
		return nil, err
	}

	res, err := e.disentangler.Disentangle(target.Embedding, before)
	if err != nil {
		return nil, err
	}
	e.opts.logger.LogDisentangle(ctx, res.Core().Len(), res.Unwanted().Len(), res.Positive().Len())

	a := &Attempt{Result: res, Original: original}
	if a.Direction, a.ImageProportion, err = e.direction(ctx, target, before, res); err != nil {
		return nil, err
	}

	if a.Boundary, err = e.builder.Build(e.channels, a.Direction, layout, e.opts.selection); err != nil {
		return nil, err
	}
	edited, err := boundary.Apply(style, a.Boundary, e.opts.step)
	if err != nil {
		return nil, err
	}
	if a.Edited, err = e.decode(ctx, edited, latent, noise); err != nil {
		return nil, err
	}
	after, err := e.encodeImage(ctx, a.Edited)
	if err != nil {
		return nil, err
	}

	a.Scores, err = e.evaluator.Evaluate(ctx, evaluate.Input{
		Before:      before,
		After:       after,
		Core:        res.CoreSemantics(),
		Unwanted:    res.UnwantedSemantics(),
		Positive:    res.PositiveSemantics(),
		ImageBefore: original,
		ImageAfter:  a.Edited,
	})
	if err != nil {
		if errors.Is(err, evaluate.ErrDimensionMismatch) {
			return nil, err
		}
		return nil, collaboratorError("identity", err)
	}
	return a, nil
}

// direction returns the edit direction and the image proportion of it.
func (e *Editor) direction(ctx context.Context, target Target, imageEmb []float64, res *disentangle.Result) ([]float64, float64, error) {
	if e.opts.method == MethodBaseline {
		return slices.Clone(target.Embedding), 0, nil
	}

	random, err := e.resampler.Resample(res.CoreEmbeddings(), target.Embedding, e.opts.temperature)
	if errors.Is(err, resample.ErrEmptyCore) {
		e.opts.logger.WarnContext(ctx, "no core prototypes, using target embedding")
		random, err = target.Embedding, nil
	}
	if err != nil {
		return nil, 0, err
	}
	c, err := resample.Compose(random, imageEmb, target.Embedding, res.PositiveSemantics(), e.opts.compose)
	if err != nil {
		return nil, 0, err
	}
	return c.Direction, c.ImageProportion, nil
}

package disentangle

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/stylealign/distance"
	"github.com/hupe1980/stylealign/mask"
	"github.com/hupe1980/stylealign/prototype"
)

type options struct {
	selector Selector
	logger   *slog.Logger
}

// Option configures a Disentangler.
type Option func(*options)

// WithSelector sets the candidate selector. The default is NewOutlierSelector(nil).
func WithSelector(s Selector) Option {
	return func(o *options) {
		o.selector = s
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Disentangler partitions a fixed bank. It has no mutable state.
type Disentangler struct {
	bank     *prototype.Bank
	selector Selector
	logger   *slog.Logger
}

// New creates a Disentangler over bank.
func New(bank *prototype.Bank, optFns ...Option) *Disentangler {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.selector == nil {
		o.selector = NewOutlierSelector(nil)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Disentangler{bank: bank, selector: o.selector, logger: o.logger}
}

// Bank returns the prototype bank.
func (d *Disentangler) Bank() *prototype.Bank {
	return d.bank
}

// Disentangle splits the bank for one text and image embedding pair.
// Both embeddings are normalized before scoring.
func (d *Disentangler) Disentangle(text, image []float64) (*Result, error) {
	text, ok := distance.NormalizeL2Copy(text)
	if !ok {
		return nil, fmt.Errorf("disentangle: text embedding: %w", prototype.ErrZeroVector)
	}
	image, ok = distance.NormalizeL2Copy(image)
	if !ok {
		return nil, fmt.Errorf("disentangle: image embedding: %w", prototype.ErrZeroVector)
	}

	textScores, err := d.bank.Scores(text)
	if err != nil {
		return nil, fmt.Errorf("disentangle: text embedding: %w", err)
	}
	imageScores, err := d.bank.Scores(image)
	if err != nil {
		return nil, fmt.Errorf("disentangle: image embedding: %w", err)
	}

	core, err := d.selector.SelectCore(textScores)
	if err != nil {
		return nil, fmt.Errorf("disentangle: core: %w", err)
	}
	candidates, err := d.selector.SelectPositive(imageScores)
	if err != nil {
		return nil, fmt.Errorf("disentangle: positive: %w", err)
	}

	// Shared candidates survive only when text and image agree on the sign.
	agreeing := candidates.Intersect(core).Filter(func(i int) bool {
		return textScores[i]*imageScores[i] >= 0
	})
	positive := agreeing.Union(candidates.Difference(core))
	unwanted := mask.Full(d.bank.Len()).Difference(positive.Union(core))

	res := &Result{
		textScores:     textScores,
		imageScores:    imageScores,
		core:           core,
		unwanted:       unwanted,
		positive:       positive,
		coreEmbeddings: d.bank.Stack(core),
	}
	if res.coreSemantics, err = d.bank.WeightedStack(core, textScores); err != nil {
		return nil, err
	}
	if res.unwantedSemantics, err = d.bank.WeightedStack(unwanted, textScores); err != nil {
		return nil, err
	}
	if res.positiveSemantics, err = d.bank.WeightedStack(positive, imageScores); err != nil {
		return nil, err
	}

	d.logger.Debug("disentangled",
		"core", core.Len(),
		"positive", positive.Len(),
		"unwanted", unwanted.Len(),
		"overlap_dropped", candidates.Intersect(core).Len()-agreeing.Len(),
	)
	return res, nil
}

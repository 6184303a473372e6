package stylealign

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/stylealign/evaluate"
	"github.com/hupe1980/stylealign/sink"
)

// Summary aggregates a run. MeanScores covers successful attempts only.
type Summary struct {
	Attempts   int
	Failed     int
	Recorded   int
	MeanScores evaluate.Scores
	Duration   time.Duration
}

// Runner edits every latent a fixed number of times. Attempts that fail
// because of a collaborator or degenerate data are logged and skipped.
type Runner struct {
	editor *Editor
	opts   options
}

// NewRunner creates a Runner. It reads the attempt count, concurrency, sink,
// metrics and logger options.
func NewRunner(editor *Editor, optFns ...Option) *Runner {
	o := applyOptions(optFns)
	if o.attempts < 1 {
		o.attempts = 1
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return &Runner{editor: editor, opts: o}
}

type tally struct {
	mu  sync.Mutex
	sum Summary
}

func (t *tally) add(a *Attempt, recorded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sum.Attempts++
	if a == nil {
		t.sum.Failed++
		return
	}
	if recorded {
		t.sum.Recorded++
	}
	m := &t.sum.MeanScores
	m.Identity += a.Scores.Identity
	m.Core += a.Scores.Core
	m.Unwanted += a.Scores.Unwanted
	m.Positive += a.Scores.Positive
}

func (t *tally) summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.sum
	if ok := s.Attempts - s.Failed; ok > 0 {
		n := float64(ok)
		s.MeanScores = evaluate.Scores{
			Identity: s.MeanScores.Identity / n,
			Core:     s.MeanScores.Core / n,
			Unwanted: s.MeanScores.Unwanted / n,
			Positive: s.MeanScores.Positive / n,
		}
	}
	return s
}

// Run prepares text once and edits each latent, or the last WithNumTest of
// them. Records keep the latent's index in latents. It returns early only when
// the target cannot be prepared, ctx is cancelled, or an attempt fails with
// an error that is not an attempt failure.
func (r *Runner) Run(ctx context.Context, text string, latents []Latent) (Summary, error) {
	start := time.Now()
	logger := r.opts.logger.WithTarget(text)

	target, err := r.editor.Prepare(ctx, text)
	if err != nil {
		return Summary{}, err
	}

	var t tally
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency)

	first := 0
	if n := r.opts.numTest; n > 0 && n < len(latents) {
		first = len(latents) - n
	}

	for i := first; i < len(latents); i++ {
		latent := latents[i]
		for attempt := range r.opts.attempts {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				alog := logger.WithLatent(i).WithAttempt(attempt)

				a, err := r.editor.Edit(gctx, target, latent)
				alog.LogAttempt(gctx, a, err)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					if IsAttemptFailure(err) {
						t.add(nil, false)
						return nil
					}
					return err
				}

				rec := sink.Record{
					Target:          text,
					Method:          string(r.editor.Method()),
					Latent:          i,
					Attempt:         attempt,
					Scores:          a.Scores,
					ChangedChannels: a.Boundary.NumChanged(),
					ImageProportion: a.ImageProportion,
					Core:            a.Result.Core().Len(),
					Unwanted:        a.Result.Unwanted().Len(),
					Positive:        a.Result.Positive().Len(),
					Duration:        a.Duration,
					CreatedAt:       time.Now(),
					Original:        a.Original,
					Edited:          a.Edited,
				}
				recorded := true
				if err := r.opts.sink.Record(gctx, rec); err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					alog.WarnContext(gctx, "record failed", "error", err)
					recorded = false
				}
				t.add(a, recorded)
				return nil
			})
		}
	}

	err = g.Wait()
	s := t.summary()
	s.Duration = time.Since(start)
	r.opts.metricsCollector.RecordRun(s.Attempts, s.Failed, s.Duration)
	if err != nil {
		return s, err
	}
	logger.LogRun(ctx, s)
	return s, nil
}

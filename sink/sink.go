package sink

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/stylealign/evaluate"
)

// Record is the outcome of one edit attempt.
type Record struct {
	Target          string          `json:"target"`
	Method          string          `json:"method"`
	Latent          int             `json:"latent"`
	Attempt         int             `json:"attempt"`
	Scores          evaluate.Scores `json:"scores"`
	ChangedChannels int             `json:"changed_channels"`
	ImageProportion float64         `json:"image_proportion"`
	Core            int             `json:"core"`
	Unwanted        int             `json:"unwanted"`
	Positive        int             `json:"positive"`
	Duration        time.Duration   `json:"duration_ns"`
	CreatedAt       time.Time       `json:"created_at"`

	Original image.Image `json:"-"`
	Edited   image.Image `json:"-"`
}

// Name returns a stable file-safe name for the record.
//
//	img3-random-red_hair-1
func (r Record) Name() string {
	target := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		default:
			return '_'
		}
	}, r.Target)
	return fmt.Sprintf("img%d-%s-%s-%d", r.Latent, r.Method, target, r.Attempt)
}

// Sink stores records. Implementations must be safe for concurrent use.
type Sink interface {
	Record(ctx context.Context, rec Record) error
}

// Discard drops every record.
type Discard struct{}

// Record implements Sink.
func (Discard) Record(context.Context, Record) error { return nil }

// MemorySink keeps records in memory.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Record implements Sink.
func (m *MemorySink) Record(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of the stored records in arrival order.
func (m *MemorySink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Multi fans a record out to several sinks and stops at the first error.
type Multi []Sink

// Record implements Sink.
func (m Multi) Record(ctx context.Context, rec Record) error {
	for _, s := range m {
		if err := s.Record(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

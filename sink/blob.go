package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"path"

	"github.com/hupe1980/stylealign/blobstore"
)

// BlobSink writes <prefix>/<name>.json and, when both images are present,
// <prefix>/<name>.png into a blob store.
type BlobSink struct {
	store  blobstore.BlobStore
	prefix string
}

// NewBlobSink creates a BlobSink.
func NewBlobSink(store blobstore.BlobStore, prefix string) *BlobSink {
	return &BlobSink{store: store, prefix: prefix}
}

// Record implements Sink.
func (s *BlobSink) Record(ctx context.Context, rec Record) error {
	name := path.Join(s.prefix, rec.Name())

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: encode %s: %w", name, err)
	}
	if err := s.store.Put(ctx, name+".json", data); err != nil {
		return fmt.Errorf("sink: put %s.json: %w", name, err)
	}

	if rec.Original == nil || rec.Edited == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, SideBySide(rec.Original, rec.Edited)); err != nil {
		return fmt.Errorf("sink: encode %s.png: %w", name, err)
	}
	if err := s.store.Put(ctx, name+".png", buf.Bytes()); err != nil {
		return fmt.Errorf("sink: put %s.png: %w", name, err)
	}
	return nil
}

// SideBySide draws a and b next to each other, top aligned.
func SideBySide(a, b image.Image) *image.RGBA {
	ab, bb := a.Bounds(), b.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, ab.Dx()+bb.Dx(), max(ab.Dy(), bb.Dy())))
	draw.Draw(out, image.Rect(0, 0, ab.Dx(), ab.Dy()), a, ab.Min, draw.Src)
	draw.Draw(out, image.Rect(ab.Dx(), 0, ab.Dx()+bb.Dx(), bb.Dy()), b, bb.Min, draw.Src)
	return out
}

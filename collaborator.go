package stylealign

import (
	"context"
	"image"

	"github.com/hupe1980/stylealign/boundary"
	"github.com/hupe1980/stylealign/evaluate"
)

// Latent is an opaque generator input. Generators define its contents.
type Latent any

// Noise is generator state returned by Encode and handed back to Decode.
type Noise any

// Generator maps latents to style spaces and style spaces to images.
// Decoding the unmodified style space of Encode must reproduce the original image.
type Generator interface {
	Encode(ctx context.Context, latent Latent) (boundary.StyleSpace, Noise, error)
	Decode(ctx context.Context, style boundary.StyleSpace, latent Latent, noise Noise) (image.Image, error)
}

// Embedder maps text and images into the shared unit-norm embedding space.
type Embedder interface {
	EncodeText(ctx context.Context, text string) ([]float64, error)
	EncodeImage(ctx context.Context, img image.Image) ([]float64, error)
}

// IdentityScorer compares the identity of two images.
type IdentityScorer = evaluate.IdentityScorer

// Package resample draws diversified edit directions from the core
// prototypes of a target text and mixes them with the image manifold.
//
// Resample connects the text embedding to every core prototype with an edge
// whose logit falls with squared distance, draws one relaxed-Bernoulli weight
// per edge and combines the prototypes with those weights, signed by the
// cosine between text and prototype. Repeated calls yield different directions
// that stay consistent with the core prototypes.
//
// Compose then blends the sampled direction with the normalized sum of the
// image-positive prototypes so the edit keeps what the image already shows.
package resample

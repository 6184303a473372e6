// Package prototype holds the immutable bank of unit-norm semantic prototype
// vectors and the readers for its persisted forms.
//
// A Bank is built once, either from rows in memory with NewBank or from a
// blob store with Load, and is then shared read-only by every stage of an edit:
//
//	bank, err := prototype.Load(ctx, store, "ffhq/prototypes.npy.zst")
//	scores, err := bank.Scores(textEmbedding)
//
// Supported formats are NumPy .npy (versions 1 to 3, little-endian float32 or
// float64, C order, two dimensions) and a raw little-endian float32 matrix
// with a 16-byte header. Either may carry a .zst or .lz4 suffix.
package prototype

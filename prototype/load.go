package prototype

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/stylealign/blobstore"
	"github.com/hupe1980/stylealign/codec"
)

// LoadMatrix reads a matrix from store without normalizing its rows.
// A .zst or .lz4 suffix on name selects the decompression codec.
func LoadMatrix(ctx context.Context, store blobstore.BlobStore, name string) (*mat.Dense, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("prototype: read %s: %w", name, err)
	}
	c, _ := codec.ForPath(name)
	raw, err := c.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("prototype: %s decompress %s: %w", c.Name(), name, err)
	}
	m, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("prototype: decode %s: %w", name, err)
	}
	return m, nil
}

// Load reads a prototype bank from store and normalizes its rows.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Bank, error) {
	m, err := LoadMatrix(ctx, store, name)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	return newBank(m.RawMatrix().Data[:r*c], r, c)
}

// Save writes m to store in the format implied by name: .npy selects NumPy,
// anything else the raw format. A trailing .zst or .lz4 compresses the result.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m mat.Matrix) error {
	c, base := codec.ForPath(name)
	var data []byte
	if strings.HasSuffix(strings.ToLower(base), ".npy") {
		data = EncodeNPY(m)
	} else {
		data = Encode(m)
	}
	out, err := c.Compress(data)
	if err != nil {
		return fmt.Errorf("prototype: %s compress %s: %w", c.Name(), name, err)
	}
	return store.Put(ctx, name, out)
}

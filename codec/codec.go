// Package codec centralizes compression of persisted prototype banks.
//
// Codecs produce standard frames: ZSTD output is readable by the zstd CLI and
// LZ4 output uses the LZ4 frame format, so banks compressed with external tools
// load without conversion.
package codec

import (
	"fmt"
	"path"
	"strings"
)

// Codec compresses and decompresses whole blobs.
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// Default is the codec used when writing banks without an explicit choice.
var Default Codec = None{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "", "none":
		return None{}, true
	case "zstd":
		return ZSTD{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// ForPath selects a codec from the file extension of name and returns the
// name with the compression extension stripped. Unknown extensions select None.
//
//	ForPath("ffhq/fs3.npy.zst") // ZSTD, "ffhq/fs3.npy"
func ForPath(name string) (Codec, string) {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return ZSTD{}, strings.TrimSuffix(name, path.Ext(name))
	case ".lz4":
		return LZ4{}, strings.TrimSuffix(name, path.Ext(name))
	default:
		return None{}, name
	}
}

// MustCompress is a helper for tests.
func MustCompress(c Codec, data []byte) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Compress(data)
	if err != nil {
		panic(fmt.Errorf("codec %s compress failed: %w", c.Name(), err))
	}
	return b
}

// None passes data through unchanged.
type None struct{}

// Compress implements Codec.
func (None) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress implements Codec.
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// Name returns "none".
func (None) Name() string { return "none" }

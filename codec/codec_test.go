package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("prototype bank row "), 512)

	for _, c := range []Codec{None{}, ZSTD{}, LZ4{}} {
		t.Run(c.Name(), func(t *testing.T) {
			compressed, err := c.Compress(data)
			require.NoError(t, err)
			if c.Name() != "none" {
				assert.Less(t, len(compressed), len(data))
			}
			out, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestZSTD_RejectsGarbage(t *testing.T) {
	_, err := ZSTD{}.Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("brotli")
	assert.False(t, ok)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		in, codec, stripped string
	}{
		{"ffhq/fs3.npy.zst", "zstd", "ffhq/fs3.npy"},
		{"bank.f32.LZ4", "lz4", "bank.f32"},
		{"bank.npy", "none", "bank.npy"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, name := ForPath(tt.in)
			assert.Equal(t, tt.codec, c.Name())
			assert.Equal(t, tt.stripped, name)
		})
	}
}

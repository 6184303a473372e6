package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// 1. Put a blob
	blobName := "ffhq/bank-001.f32"
	data := []byte("hello world, this is a test blob for stylealign")
	require.NoError(t, store.Put(ctx, blobName, data))

	_, err := os.Stat(filepath.Join(tmpDir, "ffhq", "bank-001.f32"))
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	mapped, ok := blob.(Mappable)
	require.True(t, ok)
	b, err := mapped.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, b)
	require.NoError(t, blob.Close())

	// 3. ReadAll copies out of the mapping
	all, err := ReadAll(ctx, store, blobName)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	// 4. List
	require.NoError(t, store.Put(ctx, "results/a.json", []byte("{}")))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ffhq/bank-001.f32", "results/a.json"}, names)

	names, err = store.List(ctx, "results/")
	require.NoError(t, err)
	assert.Equal(t, []string{"results/a.json"}, names)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))
	_, err = store.Open(ctx, blobName)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := []byte("abc")
	require.NoError(t, store.Put(ctx, "x/1", src))
	src[0] = 'z'

	data, err := ReadAll(ctx, store, "x/1")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	require.NoError(t, store.Put(ctx, "y/2", nil))
	empty, err := ReadAll(ctx, store, "y/2")
	require.NoError(t, err)
	assert.Empty(t, empty)

	names, err := store.List(ctx, "x/")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/1"}, names)

	_, err = store.Open(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

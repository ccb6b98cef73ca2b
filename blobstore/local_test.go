package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("source,likes\ncnn,12\ncnn,40\n")

	require.NoError(t, store.Put(ctx, "sources/cnn.csv", data))

	// Verify file exists on disk
	_, err := os.Stat(filepath.Join(tmpDir, "sources", "cnn.csv"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "sources/cnn.csv")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 6)
	n, err := blob.ReadAt(ctx, buf, 13)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "cnn,12", string(buf))

	r, err := NewReader(ctx, blob)
	require.NoError(t, err)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, all)

	// Overwrite replaces content
	require.NoError(t, store.Put(ctx, "sources/cnn.csv", []byte("x")))
	got, err := ReadAll(ctx, store, "sources/cnn.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

func TestLocalStore_List(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"sources/cnn.csv", "sources/bbc.csv.zst", "reports/latest.json"} {
		require.NoError(t, store.Put(ctx, name, []byte("x")))
	}

	names, err := store.List(ctx, "sources/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sources/bbc.csv.zst", "sources/cnn.csv"}, names)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty.csv", nil))

	got, err := ReadAll(ctx, store, "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalStore_Cancelled(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Put(ctx, "x", nil), context.Canceled)
}

func TestLocalStore_InvalidName(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.csv"), []byte("outside"), 0o644))

	store := NewLocalStore(root)
	ctx := context.Background()

	for _, name := range []string{"../secret.csv", "sources/../../secret.csv", "/etc/passwd", ""} {
		t.Run(name, func(t *testing.T) {
			data, err := ReadAll(ctx, store, name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.Nil(t, data)

			assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName)
		})
	}

	_, err := store.List(ctx, "../")
	assert.ErrorIs(t, err, ErrInvalidName)

	// nothing was written outside the root
	got, err := os.ReadFile(filepath.Join(dir, "secret.csv"))
	require.NoError(t, err)
	assert.Equal(t, "outside", string(got))
}

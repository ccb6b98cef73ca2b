package source

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/newsclust/blobstore"
	"github.com/hupe1980/newsclust/model"
	"github.com/hupe1980/newsclust/resource"
	"github.com/hupe1980/newsclust/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func lz4Bytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newsStore(t *testing.T) *blobstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "al_jazeera.csv", []byte(testutil.LikesCSV("aj", []int{5, 0, 6}))))
	require.NoError(t, store.Put(ctx, "bbc.csv.zst", zstdBytes(t, testutil.LikesCSV("bbc", []int{100, 110}))))
	require.NoError(t, store.Put(ctx, "cnn.csv.gz", gzipBytes(t, testutil.LikesCSV("cnn", []int{1000}))))
	require.NoError(t, store.Put(ctx, "reuters.csv.lz4", lz4Bytes(t, testutil.LikesCSV("reuters", []int{7, 8}))))
	require.NoError(t, store.Put(ctx, "notes.md", []byte("# notes")))
	return store
}

func TestLoad(t *testing.T) {
	store := newsStore(t)
	loader := NewLoader(store, DefaultLabels(), WithController(resource.NewController(resource.Config{
		MaxConcurrentLoads: 2,
		MemoryLimitBytes:   64,
		IOLimitBytesPerSec: 1 << 20,
	})))

	records, err := loader.Load(context.Background(), []string{
		"reuters.csv.lz4", "al_jazeera.csv", "bbc.csv.zst", "cnn.csv.gz",
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Record{
		{Source: "reuters.csv.lz4", Label: "Reuters", Likes: 7},
		{Source: "reuters.csv.lz4", Label: "Reuters", Likes: 8},
		{Source: "al_jazeera.csv", Label: "Al Jazeera", Likes: 5},
		{Source: "al_jazeera.csv", Label: "Al Jazeera", Likes: 6},
		{Source: "bbc.csv.zst", Label: "BBC", Likes: 100},
		{Source: "bbc.csv.zst", Label: "BBC", Likes: 110},
		{Source: "cnn.csv.gz", Label: "CNN", Likes: 1000},
	}, records)
}

func TestLoadDeterministic(t *testing.T) {
	store := newsStore(t)
	names := []string{"al_jazeera.csv", "bbc.csv.zst", "cnn.csv.gz", "reuters.csv.lz4"}

	first, err := NewLoader(store, DefaultLabels()).Load(context.Background(), names)
	require.NoError(t, err)

	for range 5 {
		again, err := NewLoader(store, DefaultLabels()).Load(context.Background(), names)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestLoadMissing(t *testing.T) {
	store := newsStore(t)

	_, err := NewLoader(store, DefaultLabels()).Load(context.Background(), []string{"bbc.csv.zst", "missing.csv"})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadBadRow(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bbc.csv", []byte("source,likes\nbbc,1\nbbc,many\n")))

	_, err := NewLoader(store, DefaultLabels()).Load(ctx, []string{"bbc.csv"})
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)

	f := DefaultFormat()
	f.Policy = RowSkip
	records, err := NewLoader(store, DefaultLabels(), WithFormat(f)).Load(ctx, []string{"bbc.csv"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoadCorruptCompression(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bbc.csv.gz", []byte("not gzip")))

	_, err := NewLoader(store, DefaultLabels()).Load(ctx, []string{"bbc.csv.gz"})
	assert.Error(t, err)
}

func TestLoadInvalidFormat(t *testing.T) {
	f := DefaultFormat()
	f.Comma = 0

	_, err := NewLoader(blobstore.NewMemoryStore(), nil, WithFormat(f)).Load(context.Background(), []string{"a.csv"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(newsStore(t), DefaultLabels()).Load(ctx, []string{"bbc.csv.zst"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadObserver(t *testing.T) {
	type call struct {
		records int
		stats   Stats
		err     bool
	}

	var mu sync.Mutex
	calls := make(map[string]call)
	observer := func(name string, stats Stats, records int, d time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.GreaterOrEqual(t, d, time.Duration(0))
		calls[name] = call{records: records, stats: stats, err: err != nil}
	}

	loader := NewLoader(newsStore(t), DefaultLabels(), WithObserver(observer))
	_, err := loader.Load(context.Background(), []string{"al_jazeera.csv", "cnn.csv.gz"})
	require.NoError(t, err)

	assert.Equal(t, call{records: 2, stats: Stats{Rows: 3, Dropped: 1}}, calls["al_jazeera.csv"])
	assert.Equal(t, call{records: 1, stats: Stats{Rows: 1}}, calls["cnn.csv.gz"])

	_, _, err = loader.LoadSource(context.Background(), "missing.csv")
	require.Error(t, err)
	assert.True(t, calls["missing.csv"].err)
}

func TestDiscover(t *testing.T) {
	names, err := NewLoader(newsStore(t), nil).Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"al_jazeera.csv", "bbc.csv.zst", "cnn.csv.gz", "reuters.csv.lz4"}, names)
}

func TestDiscover_SkipsPublishedReports(t *testing.T) {
	ctx := context.Background()
	store := newsStore(t)
	require.NoError(t, store.Put(ctx, "run-20240101T000000Z.csv", []byte("source,label,likes,cluster\nbbc.csv,BBC,120,1\n")))
	require.NoError(t, store.Put(ctx, blobstore.LatestName, []byte("run-20240101T000000Z.csv")))

	names, err := NewLoader(store, nil).Discover(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "run-20240101T000000Z.csv")

	loader := NewLoader(store, nil, WithExclude("run-", ""))
	names, err = loader.Discover(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"al_jazeera.csv", "bbc.csv.zst", "cnn.csv.gz", "reuters.csv.lz4"}, names)

	_, err = loader.Load(ctx, names)
	require.NoError(t, err)
}

func TestCompression(t *testing.T) {
	assert.Equal(t, CompressionZstd, CompressionOf("a.csv.zst"))
	assert.Equal(t, CompressionGzip, CompressionOf("a.csv.GZ"))
	assert.Equal(t, CompressionLZ4, CompressionOf("a.csv.lz4"))
	assert.Equal(t, CompressionNone, CompressionOf("a.csv"))
	assert.Equal(t, "a.csv", TrimCompression("a.csv.zst"))
	assert.Equal(t, "a.csv", TrimCompression("a.csv"))
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "Unknown(9)", Compression(9).String())

	_, err := Decompress(Compression(9), bytes.NewReader(nil))
	assert.Error(t, err)
}

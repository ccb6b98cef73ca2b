package source

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/newsclust/blobstore"
	"github.com/hupe1980/newsclust/model"
	"github.com/hupe1980/newsclust/resource"
	"golang.org/x/sync/errgroup"
)

// Observer is notified once per loaded source.
// It may be called from several goroutines at once.
type Observer func(name string, stats Stats, records int, duration time.Duration, err error)

// Loader loads sources from a blob store.
type Loader struct {
	store    blobstore.BlobStore
	labels   Labels
	format   Format
	rc       *resource.Controller
	observer Observer
	exclude  []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFormat sets the layout of the source files.
func WithFormat(f Format) Option {
	return func(l *Loader) { l.format = f }
}

// WithController bounds concurrency, memory and read throughput.
func WithController(rc *resource.Controller) Option {
	return func(l *Loader) { l.rc = rc }
}

// WithObserver registers a per-source callback.
func WithObserver(fn Observer) Option {
	return func(l *Loader) { l.observer = fn }
}

// WithExclude hides names starting with any of the given prefixes from
// Discover. Empty prefixes are ignored.
func WithExclude(prefixes ...string) Option {
	return func(l *Loader) {
		for _, p := range prefixes {
			if p != "" {
				l.exclude = append(l.exclude, p)
			}
		}
	}
}

// NewLoader creates a loader over store. A nil labels table labels every
// source as UnknownLabel.
func NewLoader(store blobstore.BlobStore, labels Labels, opts ...Option) *Loader {
	l := &Loader{
		store:  store,
		labels: labels,
		format: DefaultFormat(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads all named sources concurrently and returns their records
// concatenated in the order of names, so the same inputs always yield the
// same dataset. The first failing source cancels the rest.
func (l *Loader) Load(ctx context.Context, names []string) ([]model.Record, error) {
	if err := l.format.Validate(); err != nil {
		return nil, err
	}

	parts := make([][]model.Record, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.rc.MaxConcurrentLoads())

	for i, name := range names {
		g.Go(func() error {
			records, _, err := l.LoadSource(gctx, name)
			if err != nil {
				return err
			}
			parts[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(parts...), nil
}

// LoadSource reads a single source.
func (l *Loader) LoadSource(ctx context.Context, name string) (records []model.Record, stats Stats, err error) {
	start := time.Now()
	defer func() {
		if l.observer != nil {
			l.observer(name, stats, len(records), time.Since(start), err)
		}
	}()

	if err = l.rc.AcquireLoad(ctx); err != nil {
		return nil, stats, err
	}
	defer l.rc.ReleaseLoad()

	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return nil, stats, fmt.Errorf("open source %s: %w", name, err)
	}
	defer blob.Close()

	size := blob.Size()
	if err = l.rc.AcquireMemory(ctx, size); err != nil {
		return nil, stats, err
	}
	defer l.rc.ReleaseMemory(size)

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, stats, fmt.Errorf("read source %s: %w", name, err)
	}
	defer raw.Close()

	r, err := Decompress(CompressionOf(name), resource.NewRateLimitedReader(ctx, raw, l.rc))
	if err != nil {
		return nil, stats, fmt.Errorf("decompress source %s: %w", name, err)
	}
	defer r.Close()

	records, stats, err = Parse(r, name, l.labels.Label(name), l.format)
	return records, stats, err
}

// Discover lists the sources under prefix. Only names that look like
// delimited text, optionally compressed, are returned. The report pointer
// and names under an excluded prefix are skipped.
func (l *Loader) Discover(ctx context.Context, prefix string) ([]string, error) {
	names, err := l.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, name := range names {
		if name == blobstore.LatestName || l.excluded(name) {
			continue
		}
		switch strings.ToLower(path.Ext(TrimCompression(name))) {
		case ".csv", ".tsv", ".txt":
			out = append(out, name)
		}
	}
	return out, nil
}

func (l *Loader) excluded(name string) bool {
	for _, p := range l.exclude {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

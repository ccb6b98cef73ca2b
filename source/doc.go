// Package source reads likes observations from delimited text files held in
// a blobstore.BlobStore.
//
// Each source is a CSV-like file with a header row and the likes count in
// the second column:
//
//	source,likes
//	bbc,120
//	bbc,0
//
// Rows whose likes count is zero or negative are dropped. Rows that cannot
// be parsed either abort the load or are skipped, depending on the
// RowPolicy. Files ending in .zst, .gz or .lz4 are decompressed on the fly.
//
// # Usage
//
//	loader := source.NewLoader(store, source.DefaultLabels(),
//	    source.WithController(resource.NewController(resource.Config{MaxConcurrentLoads: 4})),
//	)
//	records, err := loader.Load(ctx, []string{"bbc.csv", "cnn.csv.zst"})
package source

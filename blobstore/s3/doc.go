// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "news-likes",
//	    s3.WithPrefix("sources/"),
//	    s3.WithRegion("eu-west-1"),
//	)
//
//	loader := source.NewLoader(store, labels)
//
// # Features
//
//   - Range reads; sources are streamed with a single GetObject
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - LedgerStore: DynamoDB conditional writes guard the LATEST report pointer
package s3

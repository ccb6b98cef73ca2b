// Package blobstore provides storage abstraction for source files and reports.
//
// BlobStore is the interface for reading and writing data blobs. Sources are
// delimited likes files (optionally compressed); reports are the encoded
// clustering results. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support
//   - MemoryStore: In-memory, for tests and fixtures
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - s3.LedgerStore: S3 plus a DynamoDB-versioned LATEST pointer
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)     // Open for reading
//	    Put(ctx, name, data) error        // Atomic write
//	    List(ctx, prefix) ([]string, error)
//	}
//
// For cloud backends, implement Ranger so NewReader can stream a blob with a
// single request instead of many ReadAt calls:
//
//	type Ranger interface {
//	    ReadRange(ctx, off, len int64) (io.ReadCloser, error)
//	}
package blobstore

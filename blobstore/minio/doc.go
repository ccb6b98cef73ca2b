// Package minio provides a BlobStore implementation using the MinIO client.
//
// It talks to MinIO and other S3-compatible systems (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
//	store, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false, "news-likes", "sources/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	records, err := source.NewLoader(store, labels).Load(ctx, names)
package minio

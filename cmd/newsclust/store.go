package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/newsclust/blobstore"
	"github.com/hupe1980/newsclust/blobstore/minio"
	"github.com/hupe1980/newsclust/blobstore/s3"
	"github.com/hupe1980/newsclust/config"
)

// openStore builds the blob store selected by cfg.Store.Backend.
func openStore(ctx context.Context, cfg *config.Config) (blobstore.BlobStore, error) {
	sc := cfg.Store

	switch sc.Backend {
	case config.BackendLocal:
		return blobstore.NewLocalStore(sc.Path), nil
	case config.BackendMemory:
		return blobstore.NewMemoryStore(), nil
	case config.BackendS3:
		var opts []s3.Option
		if sc.Prefix != "" {
			opts = append(opts, s3.WithPrefix(sc.Prefix))
		}
		if sc.Region != "" {
			opts = append(opts, s3.WithRegion(sc.Region))
		}
		if sc.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(sc.Endpoint))
		}
		store, err := s3.New(ctx, sc.Bucket, opts...)
		if err != nil {
			return nil, err
		}
		if sc.LedgerTable == "" {
			return store, nil
		}
		return s3.DialLedger(ctx, store, sc.LedgerTable, fmt.Sprintf("s3://%s/%s", sc.Bucket, sc.Prefix), sc.Region)
	case config.BackendMinio:
		return minio.Dial(sc.Endpoint, sc.AccessKey, sc.SecretKey, sc.Secure, sc.Bucket, sc.Prefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

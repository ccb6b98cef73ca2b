package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/newsclust/blobstore"
)

// Publish encodes rep, writes it to store under name and then points
// blobstore.LatestName at it. It returns the number of bytes written.
//
// The report blob is written first so LATEST never names a missing report.
func Publish(ctx context.Context, store blobstore.BlobStore, name string, rep *Report, f Format) (int, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rep, f); err != nil {
		return 0, err
	}

	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("publish %s: %w", name, err)
	}
	if err := store.Put(ctx, blobstore.LatestName, []byte(name)); err != nil {
		return buf.Len(), fmt.Errorf("advance %s to %s: %w", blobstore.LatestName, name, err)
	}
	return buf.Len(), nil
}

// Latest returns the name of the most recently published report.
func Latest(ctx context.Context, store blobstore.BlobStore) (string, error) {
	data, err := blobstore.ReadAll(ctx, store, blobstore.LatestName)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

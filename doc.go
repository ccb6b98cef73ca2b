// Package newsclust clusters per-article engagement counts ("likes") by news
// source with Lloyd's k-means.
//
// The clustering engine is deterministic: the first k observations seed the
// centroids, every observation joins its nearest centroid (lowest index wins
// ties), centroids move to the mean of their members, and the loop stops once
// every centroid moves less than the tolerance or the iteration budget runs out.
//
// # Quick Start
//
//	c, _ := newsclust.New(newsclust.WithK(3))
//	res, err := c.ClusterValues(ctx, []float64{12, 15, 480, 510, 9100})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.State, res.Labels, res.Centroids)
//
// # Loading sources
//
// Delimited "source,likes" files are read from a blobstore.BlobStore (local
// filesystem, S3 or MinIO) by the source package, which attaches the display
// label of every source:
//
//	store := blobstore.NewLocalStore("./data")
//	loader := source.NewLoader(store, source.Labels{"cnn.csv": "CNN"})
//	records, _ := loader.Load(ctx, []string{"cnn.csv"})
//	res, _ := c.Cluster(ctx, model.Vectors(records))
//
// # Terminal states
//
// A Result is either StateConverged or StateIterationLimitReached. The latter
// is not an error: the centroids and labels of the last iteration are usable,
// but callers that need a trustworthy fixed point should check Converged().
//
// # Errors
//
//   - ErrInvalidParameter: non-positive k, max iterations or tolerance
//   - ErrInsufficientData: fewer observations than k
//   - *ErrDimensionMismatch: observations of unequal dimensionality
package newsclust

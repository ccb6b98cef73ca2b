// Package kmeans implements Lloyd's k-means clustering over float64 observations.
//
// The engine is split into the steps of the algorithm: an Initializer picks
// the starting centroids, Assign labels every observation with its nearest
// centroid, Update recomputes centroids as member means, and Converged decides
// whether the centroid set stopped moving. Run drives the loop until
// convergence or until the iteration budget is spent.
//
// Everything runs on the calling goroutine. Run only checks the context at the
// top of each iteration.
package kmeans

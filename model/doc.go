// Package model defines the records clustered by newsclust.
//
// A Record is one observation: the likes count of an article together with
// the source it was read from and the display label of that source.
// Vectors and Values adapt records to the dataset shapes the clusterer takes.
package model

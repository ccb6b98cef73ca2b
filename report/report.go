package report

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/newsclust"
	"github.com/hupe1980/newsclust/model"
)

// ErrMismatch is returned when records and result labels differ in length.
var ErrMismatch = errors.New("records and labels differ in length")

// Report is the outcome of one clustering run over a set of records.
type Report struct {
	K          int       `json:"k" yaml:"k"`
	State      string    `json:"state" yaml:"state"`
	Iterations int       `json:"iterations" yaml:"iterations"`
	Clusters   []Cluster `json:"clusters" yaml:"clusters"`
	Rows       []Row     `json:"rows" yaml:"rows"`
}

// Row is a single observation and the cluster it was assigned to.
type Row struct {
	Source  string `json:"source" yaml:"source"`
	Label   string `json:"label" yaml:"label"`
	Likes   uint64 `json:"likes" yaml:"likes"`
	Cluster int    `json:"cluster" yaml:"cluster"`
}

// Cluster summarizes the members of one cluster.
// Min and Max are zero for an empty cluster.
type Cluster struct {
	Index    int          `json:"index" yaml:"index"`
	Centroid []float64    `json:"centroid" yaml:"centroid"`
	Size     int          `json:"size" yaml:"size"`
	Min      uint64       `json:"min" yaml:"min"`
	Max      uint64       `json:"max" yaml:"max"`
	Labels   []LabelCount `json:"labels" yaml:"labels"`
}

// LabelCount is the number of members of a cluster carrying a label.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Build pairs records with the labels of res. records must be the dataset
// res was computed from, in the same order.
func Build(records []model.Record, res *newsclust.Result) (*Report, error) {
	if len(records) != len(res.Labels) {
		return nil, fmt.Errorf("%w: %d records, %d labels", ErrMismatch, len(records), len(res.Labels))
	}

	rep := &Report{
		K:          res.K(),
		State:      res.State.String(),
		Iterations: res.Iterations,
		Rows:       make([]Row, len(records)),
		Clusters:   make([]Cluster, res.K()),
	}

	for i, r := range records {
		rep.Rows[i] = Row{Source: r.Source, Label: r.Label, Likes: r.Likes, Cluster: res.Labels[i]}
	}

	labels := model.Labels(records)
	byLabel := make(map[string]*roaring.Bitmap, len(labels))
	for _, l := range labels {
		byLabel[l] = roaring.New()
	}
	for i, r := range records {
		byLabel[r.Label].Add(uint32(i))
	}

	for c, members := range res.Members() {
		cl := Cluster{
			Index:    c,
			Centroid: res.Centroids[c],
			Size:     int(members.GetCardinality()),
			Labels:   []LabelCount{},
		}

		it := members.Iterator()
		for it.HasNext() {
			likes := records[it.Next()].Likes
			if cl.Min == 0 || likes < cl.Min {
				cl.Min = likes
			}
			cl.Max = max(cl.Max, likes)
		}

		for _, l := range labels {
			if n := members.AndCardinality(byLabel[l]); n > 0 {
				cl.Labels = append(cl.Labels, LabelCount{Label: l, Count: int(n)})
			}
		}

		rep.Clusters[c] = cl
	}

	return rep, nil
}

package model

import "fmt"

// Record is a single likes observation.
type Record struct {
	// Source is the blob name the record was read from.
	Source string `json:"source" yaml:"source"`
	// Label is the display name of the source (e.g. "BBC").
	Label string `json:"label" yaml:"label"`
	// Likes is the positive likes count.
	Likes uint64 `json:"likes" yaml:"likes"`
}

// String returns a string representation of the Record.
func (r Record) String() string {
	return fmt.Sprintf("%s(%s): %d", r.Label, r.Source, r.Likes)
}

// Values returns the likes of each record as float64, in order.
func Values(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Likes)
	}
	return out
}

// Vectors returns the records as one-dimensional observations, in order.
// All rows share one backing array.
func Vectors(records []Record) [][]float64 {
	flat := Values(records)
	out := make([][]float64, len(records))
	for i := range flat {
		out[i] = flat[i : i+1 : i+1]
	}
	return out
}

// Labels returns the distinct labels in order of first appearance.
func Labels(records []Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	return out
}

// Package report turns a clustering result into a per-observation and
// per-cluster report, encodes it and publishes it to a blob store.
//
//	rep, err := report.Build(records, res)
//	err = report.Encode(os.Stdout, rep, report.FormatText)
//
// The text format prints one line per observation:
//
//	News Source: BBC, Likes: 120, Cluster: 1
package report

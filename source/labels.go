package source

import "path"

// UnknownLabel is the display label of sources missing from the table.
const UnknownLabel = "Unknown"

// Labels maps source names to display labels.
type Labels map[string]string

// DefaultLabels returns the labels of the four news outlets the tool was
// first run against.
func DefaultLabels() Labels {
	return Labels{
		"al_jazeera.csv": "Al Jazeera",
		"bbc.csv":        "BBC",
		"cnn.csv":        "CNN",
		"reuters.csv":    "Reuters",
	}
}

// Label returns the display label of name. The full name is tried first,
// then its base name without compression suffix. Unmapped names get
// UnknownLabel.
func (l Labels) Label(name string) string {
	if label, ok := l[name]; ok {
		return label
	}
	if label, ok := l[path.Base(TrimCompression(name))]; ok {
		return label
	}
	return UnknownLabel
}

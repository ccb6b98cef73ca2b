package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Format is a report encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatCSV
)

// String returns the config name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// Extension returns the file extension used when publishing.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Encode writes rep to w in format f.
func Encode(w io.Writer, rep *Report, f Format) error {
	switch f {
	case FormatText:
		return encodeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, rep)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func encodeText(w io.Writer, rep *Report) error {
	for _, r := range rep.Rows {
		if _, err := fmt.Fprintf(w, "News Source: %s, Likes: %d, Cluster: %d\n", r.Label, r.Likes, r.Cluster); err != nil {
			return err
		}
	}
	return nil
}

func encodeCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "label", "likes", "cluster"}); err != nil {
		return err
	}
	for _, r := range rep.Rows {
		if err := cw.Write([]string{
			r.Source,
			r.Label,
			strconv.FormatUint(r.Likes, 10),
			strconv.Itoa(r.Cluster),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

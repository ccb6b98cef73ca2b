package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/newsclust/model"
)

var (
	// ErrShortRow is returned for rows without a likes column.
	ErrShortRow = errors.New("row has no likes column")
	// ErrInvalidLikes is returned when the likes column is not an integer.
	ErrInvalidLikes = errors.New("invalid likes value")
	// ErrInvalidFormat is returned by Format.Validate.
	ErrInvalidFormat = errors.New("invalid source format")
)

// RowPolicy decides what happens to rows that cannot be parsed.
type RowPolicy int

const (
	// RowAbort stops the load at the first bad row.
	RowAbort RowPolicy = iota
	// RowSkip drops bad rows and counts them.
	RowSkip
)

// String returns the config name of the policy.
func (p RowPolicy) String() string {
	switch p {
	case RowAbort:
		return "abort"
	case RowSkip:
		return "skip"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// ParseRowPolicy parses "abort" or "skip". The empty string means abort.
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(s) {
	case "", "abort":
		return RowAbort, nil
	case "skip":
		return RowSkip, nil
	default:
		return 0, fmt.Errorf("%w: unknown row policy %q", ErrInvalidFormat, s)
	}
}

// RowError reports a bad row.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Format describes the layout of a source file.
type Format struct {
	// Comma is the field delimiter. Default: ','.
	Comma rune
	// LikesColumn is the zero-based column holding the likes count. Default: 1.
	LikesColumn int
	// Header skips the first row. Default: true.
	Header bool
	// Policy handles unparsable rows. Default: RowAbort.
	Policy RowPolicy
}

// DefaultFormat returns the "source,likes" layout with a header row.
func DefaultFormat() Format {
	return Format{
		Comma:       ',',
		LikesColumn: 1,
		Header:      true,
		Policy:      RowAbort,
	}
}

// Validate checks the format.
func (f Format) Validate() error {
	if f.Comma == 0 || f.Comma == '"' || f.Comma == '\r' || f.Comma == '\n' {
		return fmt.Errorf("%w: comma %q", ErrInvalidFormat, f.Comma)
	}
	if f.LikesColumn < 0 {
		return fmt.Errorf("%w: likes column %d", ErrInvalidFormat, f.LikesColumn)
	}
	if f.Policy != RowAbort && f.Policy != RowSkip {
		return fmt.Errorf("%w: row policy %s", ErrInvalidFormat, f.Policy)
	}
	return nil
}

// Stats counts the rows seen by Parse.
type Stats struct {
	// Rows is the number of data rows read, header excluded.
	Rows int
	// Dropped is the number of rows with a non-positive likes count.
	Dropped int
	// Skipped is the number of bad rows ignored under RowSkip.
	Skipped int
}

// Parse reads records from r. name and label are stamped on every record.
// Under RowAbort the first bad row returns a *RowError and no records.
func Parse(r io.Reader, name, label string, f Format) ([]model.Record, Stats, error) {
	var stats Stats
	if err := f.Validate(); err != nil {
		return nil, stats, err
	}

	cr := csv.NewReader(r)
	cr.Comma = f.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var records []model.Record
	header := f.Header

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, stats, fmt.Errorf("read %s: %w", name, err)
			}
			if header {
				header = false
			} else {
				stats.Rows++
			}
			if f.Policy == RowSkip {
				stats.Skipped++
				continue
			}
			return nil, stats, &RowError{Source: name, Line: perr.Line, Err: perr.Err}
		}
		if header {
			header = false
			continue
		}
		stats.Rows++

		likes, keep, err := parseRow(row, f.LikesColumn)
		if err != nil {
			if f.Policy == RowSkip {
				stats.Skipped++
				continue
			}
			line, _ := cr.FieldPos(0)
			return nil, stats, &RowError{Source: name, Line: line, Err: err}
		}
		if !keep {
			stats.Dropped++
			continue
		}

		records = append(records, model.Record{Source: name, Label: label, Likes: likes})
	}

	return records, stats, nil
}

// parseRow returns the likes of row and whether the row is kept.
// Non-positive counts are valid but not kept.
func parseRow(row []string, column int) (uint64, bool, error) {
	if column >= len(row) {
		return 0, false, ErrShortRow
	}

	field := strings.TrimSpace(row[column])
	if v, err := strconv.ParseUint(field, 10, 64); err == nil {
		return v, v > 0, nil
	}
	if v, err := strconv.ParseInt(field, 10, 64); err == nil && v <= 0 {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: %q", ErrInvalidLikes, field)
}

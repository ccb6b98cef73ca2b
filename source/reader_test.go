package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/newsclust/model"
	"github.com/hupe1980/newsclust/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := testutil.LikesCSV("bbc", []int{12, 0, 48, -3, 7})

	records, stats, err := Parse(strings.NewReader(in), "bbc.csv", "BBC", DefaultFormat())
	require.NoError(t, err)

	assert.Equal(t, []model.Record{
		{Source: "bbc.csv", Label: "BBC", Likes: 12},
		{Source: "bbc.csv", Label: "BBC", Likes: 48},
		{Source: "bbc.csv", Label: "BBC", Likes: 7},
	}, records)
	assert.Equal(t, Stats{Rows: 5, Dropped: 2}, stats)
}

func TestParseEmpty(t *testing.T) {
	records, stats, err := Parse(strings.NewReader(""), "empty.csv", "X", DefaultFormat())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, stats)

	records, stats, err = Parse(strings.NewReader("source,likes\n"), "header.csv", "X", DefaultFormat())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, stats.Rows)
}

func TestParseNoHeader(t *testing.T) {
	f := DefaultFormat()
	f.Header = false
	f.Comma = ';'
	f.LikesColumn = 0

	records, _, err := Parse(strings.NewReader("5;cnn\n 9 ;cnn\n"), "cnn.csv", "CNN", f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint64(5), records[0].Likes)
	assert.Equal(t, uint64(9), records[1].Likes)
}

func TestParseAbort(t *testing.T) {
	in := "source,likes\nbbc,12\nbbc,lots\nbbc,3\n"

	records, _, err := Parse(strings.NewReader(in), "bbc.csv", "BBC", DefaultFormat())
	require.Error(t, err)
	assert.Nil(t, records)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "bbc.csv", rowErr.Source)
	assert.Equal(t, 3, rowErr.Line)
	assert.ErrorIs(t, err, ErrInvalidLikes)
	assert.Contains(t, err.Error(), "bbc.csv:3")
}

func TestParseShortRowAbort(t *testing.T) {
	_, _, err := Parse(strings.NewReader("source,likes\nbbc\n"), "bbc.csv", "BBC", DefaultFormat())
	assert.ErrorIs(t, err, ErrShortRow)
}

func TestParseSkip(t *testing.T) {
	in := "source,likes\nbbc,12\nbbc,lots\nbbc\nbbc,\"3\nbbc,4\n"
	f := DefaultFormat()
	f.Policy = RowSkip

	records, stats, err := Parse(strings.NewReader(in), "bbc.csv", "BBC", f)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, uint64(12), records[0].Likes)
	assert.GreaterOrEqual(t, stats.Skipped, 2)
}

func TestParseOverflow(t *testing.T) {
	f := DefaultFormat()
	f.Policy = RowSkip

	records, stats, err := Parse(strings.NewReader("s,l\na,99999999999999999999999\na,1\n"), "a.csv", "A", f)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, stats.Skipped)
}

func TestFormatValidate(t *testing.T) {
	require.NoError(t, DefaultFormat().Validate())

	tests := []struct {
		name   string
		modify func(*Format)
	}{
		{"zero comma", func(f *Format) { f.Comma = 0 }},
		{"quote comma", func(f *Format) { f.Comma = '"' }},
		{"newline comma", func(f *Format) { f.Comma = '\n' }},
		{"negative column", func(f *Format) { f.LikesColumn = -1 }},
		{"bad policy", func(f *Format) { f.Policy = RowPolicy(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFormat()
			tt.modify(&f)
			assert.ErrorIs(t, f.Validate(), ErrInvalidFormat)

			_, _, err := Parse(strings.NewReader("a,1\n"), "a.csv", "A", f)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestRowPolicy(t *testing.T) {
	for _, s := range []string{"", "abort", "ABORT"} {
		p, err := ParseRowPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, RowAbort, p)
	}

	p, err := ParseRowPolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, RowSkip, p)
	assert.Equal(t, "skip", p.String())
	assert.Equal(t, "abort", RowAbort.String())
	assert.Equal(t, "Unknown(7)", RowPolicy(7).String())

	_, err = ParseRowPolicy("ignore")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLabels(t *testing.T) {
	labels := DefaultLabels()

	assert.Equal(t, "BBC", labels.Label("bbc.csv"))
	assert.Equal(t, "Al Jazeera", labels.Label("2024/al_jazeera.csv.zst"))
	assert.Equal(t, UnknownLabel, labels.Label("guardian.csv"))
	assert.Equal(t, UnknownLabel, Labels(nil).Label("bbc.csv"))

	custom := Labels{"feeds/cnn.csv": "CNN US"}
	assert.Equal(t, "CNN US", custom.Label("feeds/cnn.csv"))
}

package models

import (
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func testSeries() NormalizedSeries {
	s := NormalizedSeries{Step: 2 * time.Minute}
	for i := 0; i < 5; i++ {
		s.Buckets = append(s.Buckets, Bucket{
			Start:     start.Add(time.Duration(i) * 2 * time.Minute),
			HeartRate: float64(60 + i),
			Missing:   i == 2,
		})
	}
	return s
}

func TestSeriesBounds(t *testing.T) {
	s := testSeries()
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, start, s.First())
	assert.Equal(t, start.Add(8*time.Minute), s.Last())

	var empty NormalizedSeries
	assert.True(t, empty.First().IsZero())
	assert.True(t, empty.Last().IsZero())
	assert.Equal(t, 0, empty.IndexOf(start))
}

func TestIndexOf(t *testing.T) {
	s := testSeries()
	cases := map[time.Duration]int{
		-time.Hour:      0,
		0:               0,
		time.Second:     1,
		2 * time.Minute: 1,
		3 * time.Minute: 2,
		8 * time.Minute: 4,
		9 * time.Minute: 5,
		time.Hour:       5,
	}
	for offset, want := range cases {
		assert.Equal(t, want, s.IndexOf(start.Add(offset)), offset.String())
	}
}

func TestSlice(t *testing.T) {
	s := testSeries()

	got := s.Slice(start.Add(2*time.Minute), start.Add(6*time.Minute))
	require.Len(t, got, 2)
	assert.Equal(t, 61.0, got[0].HeartRate)
	assert.True(t, got[1].Missing)

	got[0].HeartRate = 0
	assert.Equal(t, 61.0, s.Buckets[1].HeartRate)

	assert.Nil(t, s.Slice(start.Add(6*time.Minute), start.Add(2*time.Minute)))
	assert.Len(t, s.Slice(start.Add(-time.Hour), start.Add(time.Hour)), 5)
}

func TestSamplesAndPresent(t *testing.T) {
	s := testSeries()

	assert.Equal(t, 4, s.Present())
	samples := s.Samples()
	require.Len(t, samples, 4)
	assert.Equal(t, RawSample{Timestamp: start.Add(6 * time.Minute), HeartRate: 63}, samples[2])
}

func TestIntervalDuration(t *testing.T) {
	i := Interval{Start: start, End: start.Add(2 * time.Hour)}
	assert.Equal(t, 2*time.Hour, i.Duration())
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{
		Source: "export.csv",
		Row:    3,
		Column: "heartrate",
		Value:  "abc",
		Reason: "invalid heart rate",
		Err:    io.ErrUnexpectedEOF,
	}
	assert.Equal(t, `format error in export.csv at row 3 column "heartrate": invalid heart rate (value "abc"): unexpected EOF`, err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	bare := &FormatError{Reason: "unsupported file type"}
	assert.Equal(t, "format error: unsupported file type", bare.Error())
}

func TestOutcomeErrors(t *testing.T) {
	noData := &NoDataError{Reason: "No valid 2-hour intervals found."}
	assert.Equal(t, "No valid 2-hour intervals found.", noData.Error())

	empty := &EmptyIntervalError{Interval: Interval{Start: start, End: start.Add(time.Hour)}}
	assert.Equal(t, "interval 2024-03-01T08:00:00Z - 2024-03-01T09:00:00Z contains no heart rate data", empty.Error())
}

func TestReportJSONOmitsSeries(t *testing.T) {
	report := Report{Series: testSeries(), Intervals: []Interval{{Start: start, End: start.Add(time.Hour)}}}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "Series")
	assert.NotContains(t, decoded, "latest")
	assert.Len(t, decoded["intervals"], 1)
}

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/models"
)

func TestExtractStats_Constant(t *testing.T) {
	series, err := Normalize(minuteSamples(evenMinutes(120), constant(70)), 2*time.Minute)
	require.NoError(t, err)
	interval := models.Interval{Start: base, End: base.Add(2 * time.Hour)}

	stats, err := ExtractStats(series, interval)
	require.NoError(t, err)

	assert.Equal(t, 70.0, stats.Min)
	assert.Equal(t, 70.0, stats.Max)
	assert.Equal(t, 70.0, stats.Mean)
	assert.Equal(t, 60, stats.Samples)
	assert.Len(t, stats.Buckets, 60)
	assert.Equal(t, interval, stats.Interval)
}

func TestExtractStats_MinMaxMean(t *testing.T) {
	series, err := Normalize(minuteSamples(evenMinutes(238), func(i int) float64 { return 60 + float64(i) }), 2*time.Minute)
	require.NoError(t, err)
	interval := models.Interval{Start: base.Add(118 * time.Minute), End: base.Add(238 * time.Minute)}

	stats, err := ExtractStats(series, interval)
	require.NoError(t, err)

	// buckets 59..118 hold 119..178
	assert.Equal(t, 119.0, stats.Min)
	assert.Equal(t, 178.0, stats.Max)
	assert.InDelta(t, 148.5, stats.Mean, 1e-9)
	assert.Equal(t, base.Add(118*time.Minute), stats.Buckets[0].Start)
}

func TestExtractStats_SliceIsACopy(t *testing.T) {
	series, err := Normalize(minuteSamples(evenMinutes(120), constant(70)), 2*time.Minute)
	require.NoError(t, err)

	stats, err := ExtractStats(series, models.Interval{Start: base, End: base.Add(2 * time.Hour)})
	require.NoError(t, err)

	stats.Buckets[0].HeartRate = 200
	assert.Equal(t, 70.0, series.Buckets[0].HeartRate)
}

func TestExtractStats_EmptyInterval(t *testing.T) {
	series, err := Normalize(minuteSamples([]int{0, 200}, constant(70)), 2*time.Minute)
	require.NoError(t, err)

	interval := models.Interval{Start: base.Add(10 * time.Minute), End: base.Add(30 * time.Minute)}
	_, err = ExtractStats(series, interval)

	var empty *models.EmptyIntervalError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, interval, empty.Interval)

	// outside the series entirely
	_, err = ExtractStats(series, models.Interval{Start: base.Add(-time.Hour), End: base.Add(-time.Minute)})
	assert.ErrorAs(t, err, &empty)
}

func TestZoneBreakdown(t *testing.T) {
	buckets := []models.Bucket{
		{HeartRate: 60},
		{HeartRate: 85.9},
		{HeartRate: 86},
		{HeartRate: 130},
		{HeartRate: 150},
		{HeartRate: 230},
		{Missing: true},
	}

	zones := ZoneBreakdown(buckets, 2*time.Minute)

	require.Len(t, zones, 4)
	got := map[string]float64{}
	for _, z := range zones {
		got[z.Name] = z.Minutes
	}
	assert.Equal(t, map[string]float64{
		"Out of Range": 4,
		"Fat Burn":     2,
		"Cardio":       2,
		"Peak":         4,
	}, got)
	assert.Equal(t, 86, zones[1].Low)
	assert.Equal(t, 121, zones[1].High)
}

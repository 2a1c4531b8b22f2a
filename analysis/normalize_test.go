package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefit/models"
)

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// minuteSamples builds one sample per listed minute offset from base
func minuteSamples(minutes []int, hr func(i int) float64) []models.RawSample {
	samples := make([]models.RawSample, len(minutes))
	for i, m := range minutes {
		samples[i] = models.RawSample{Timestamp: base.Add(time.Duration(m) * time.Minute), HeartRate: hr(i)}
	}
	return samples
}

// evenMinutes returns 0, 2, 4, ... up to and including last
func evenMinutes(last int, skip ...int) []int {
	skipped := make(map[int]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var out []int
	for m := 0; m <= last; m += 2 {
		if !skipped[m] {
			out = append(out, m)
		}
	}
	return out
}

func constant(v float64) func(int) float64 {
	return func(int) float64 { return v }
}

func TestNormalize_DenseGrid(t *testing.T) {
	samples := minuteSamples(evenMinutes(238), func(i int) float64 { return 60 + float64(i) })

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	require.Equal(t, 120, series.Len())
	assert.Equal(t, 2*time.Minute, series.Step)
	assert.Equal(t, base, series.First())
	assert.Equal(t, base.Add(238*time.Minute), series.Last())
	assert.Equal(t, 120, series.Present())
	for i, b := range series.Buckets {
		assert.False(t, b.Missing)
		assert.Equal(t, 60+float64(i), b.HeartRate)
	}
}

func TestNormalize_MeanPerBucket(t *testing.T) {
	samples := []models.RawSample{
		{Timestamp: base, HeartRate: 60},
		{Timestamp: base.Add(30 * time.Second), HeartRate: 70},
		{Timestamp: base.Add(90 * time.Second), HeartRate: 80},
		// duplicate timestamp folds into the mean
		{Timestamp: base.Add(2 * time.Minute), HeartRate: 100},
		{Timestamp: base.Add(2 * time.Minute), HeartRate: 110},
	}

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	assert.InDelta(t, 70.0, series.Buckets[0].HeartRate, 1e-9)
	assert.InDelta(t, 105.0, series.Buckets[1].HeartRate, 1e-9)
}

func TestNormalize_MissingBucketsAreMarked(t *testing.T) {
	samples := minuteSamples([]int{0, 2, 10}, constant(70))

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	require.Equal(t, 6, series.Len())
	missing := []bool{false, false, true, true, true, false}
	for i, b := range series.Buckets {
		assert.Equal(t, missing[i], b.Missing, "bucket %d", i)
		if b.Missing {
			assert.Zero(t, b.HeartRate, "missing bucket %d must not be averaged", i)
		}
	}
}

func TestNormalize_UnsortedInputIsNotMutated(t *testing.T) {
	samples := minuteSamples([]int{6, 0, 4, 2}, func(i int) float64 { return float64(i) })
	before := append([]models.RawSample(nil), samples...)

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, before, samples)
	assert.Equal(t, base, series.First())
	assert.Equal(t, []float64{1, 3, 2, 0}, []float64{
		series.Buckets[0].HeartRate, series.Buckets[1].HeartRate,
		series.Buckets[2].HeartRate, series.Buckets[3].HeartRate,
	})
}

func TestNormalize_AnchorsAtMinimumTimestamp(t *testing.T) {
	start := base.Add(37 * time.Second)
	samples := []models.RawSample{
		{Timestamp: start, HeartRate: 60},
		{Timestamp: start.Add(119 * time.Second), HeartRate: 62},
		{Timestamp: start.Add(120 * time.Second), HeartRate: 64},
	}

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	assert.Equal(t, start, series.Buckets[0].Start)
	assert.Equal(t, 61.0, series.Buckets[0].HeartRate)
	assert.Equal(t, 64.0, series.Buckets[1].HeartRate)
}

func TestNormalize_GridIsFixedStepAscending(t *testing.T) {
	offsets := []time.Duration{0, 13 * time.Second, 5 * time.Minute, 5*time.Minute + 1, 41 * time.Minute, 3 * time.Hour, 3*time.Hour + 59*time.Second}
	var samples []models.RawSample
	for i, off := range offsets {
		samples = append(samples, models.RawSample{Timestamp: base.Add(off), HeartRate: float64(50 + i)})
	}

	for _, width := range []time.Duration{30 * time.Second, time.Minute, 2 * time.Minute, 7 * time.Minute} {
		series, err := Normalize(samples, width)
		require.NoError(t, err)

		for i := 1; i < series.Len(); i++ {
			assert.Equal(t, width, series.Buckets[i].Start.Sub(series.Buckets[i-1].Start))
		}
		assert.False(t, series.Buckets[0].Missing)
		assert.False(t, series.Buckets[series.Len()-1].Missing)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := minuteSamples(evenMinutes(300, 20, 22, 150), func(i int) float64 { return 55 + float64(i%17) })

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)

	again, err := Normalize(series.Samples(), series.Step)
	require.NoError(t, err)

	assert.Equal(t, series, again)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(nil, 2*time.Minute)
	var noData *models.NoDataError
	assert.ErrorAs(t, err, &noData)

	_, err = Normalize(minuteSamples([]int{0}, constant(60)), 0)
	assert.Error(t, err)
}

func TestNormalize_SingleSample(t *testing.T) {
	series, err := Normalize(minuteSamples([]int{0}, constant(60)), 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
	assert.Equal(t, series.First(), series.Last())
}

func TestNormalize_RejectsHugeSpan(t *testing.T) {
	cases := map[string][]models.RawSample{
		"typo'd year": {
			{Timestamp: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), HeartRate: 60},
			{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), HeartRate: 61},
		},
		"beyond duration range": {
			{Timestamp: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), HeartRate: 60},
			{Timestamp: base, HeartRate: 61},
		},
	}
	for name, samples := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(samples, 2*time.Minute)

			var fe *models.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "timestamp", fe.Column)
			assert.Contains(t, fe.Value, samples[0].Timestamp.Format(time.RFC3339))
			assert.Contains(t, fe.Value, samples[1].Timestamp.Format(time.RFC3339))
		})
	}
}

func TestNormalize_RejectsTooManyBuckets(t *testing.T) {
	samples := []models.RawSample{
		{Timestamp: base, HeartRate: 60},
		{Timestamp: base.Add(30 * 24 * time.Hour), HeartRate: 61},
	}

	_, err := Normalize(samples, time.Second)
	var fe *models.FormatError
	require.ErrorAs(t, err, &fe)

	series, err := Normalize(samples, 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*24*30+1, series.Len())
}

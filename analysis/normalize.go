package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/pulsefit/models"
)

const (
	// maxSpan bounds the time covered by one export; anything wider is
	// almost always a mistyped year in a single row.
	maxSpan = 400 * 24 * time.Hour
	// maxBuckets bounds the grid for very small bucket widths
	maxBuckets = 1 << 20
)

// Normalize resamples raw samples onto a grid of width-sized buckets
// anchored at the earliest timestamp. Each bucket holds the mean of the
// samples falling in [start, start+width); empty buckets are marked Missing.
// The input slice is left untouched.
func Normalize(samples []models.RawSample, width time.Duration) (models.NormalizedSeries, error) {
	if width <= 0 {
		return models.NormalizedSeries{}, fmt.Errorf("bucket width must be positive, got %s", width)
	}
	if len(samples) == 0 {
		return models.NormalizedSeries{}, &models.NoDataError{Reason: "no heart rate samples to normalize"}
	}

	sorted := make([]models.RawSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	first := sorted[0].Timestamp
	last := sorted[len(sorted)-1].Timestamp
	if err := checkSpan(first, last, width); err != nil {
		return models.NormalizedSeries{}, err
	}
	n := int(last.Sub(first)/width) + 1

	sums := make([]float64, n)
	counts := make([]int, n)
	for _, s := range sorted {
		idx := int(s.Timestamp.Sub(first) / width)
		sums[idx] += s.HeartRate
		counts[idx]++
	}

	buckets := make([]models.Bucket, n)
	for i := range buckets {
		buckets[i].Start = first.Add(time.Duration(i) * width)
		if counts[i] == 0 {
			buckets[i].Missing = true
			continue
		}
		buckets[i].HeartRate = sums[i] / float64(counts[i])
	}

	return models.NormalizedSeries{Step: width, Buckets: buckets}, nil
}

// checkSpan rejects timestamp ranges that would need an unreasonable grid.
// The comparison avoids Time.Sub, which saturates past ~292 years.
func checkSpan(first, last time.Time, width time.Duration) error {
	value := first.Format(time.RFC3339) + " - " + last.Format(time.RFC3339)
	if last.After(first.Add(maxSpan)) {
		return &models.FormatError{
			Column: "timestamp",
			Value:  value,
			Reason: fmt.Sprintf("timestamps span more than %d days", int(maxSpan/(24*time.Hour))),
		}
	}
	if last.Sub(first)/width >= maxBuckets {
		return &models.FormatError{
			Column: "timestamp",
			Value:  value,
			Reason: fmt.Sprintf("more than %d buckets of %s", maxBuckets, width),
		}
	}
	return nil
}

package analysis

import (
	"iter"
	"slices"
	"time"

	"github.com/pulsefit/models"
)

// DenseIntervals yields, in chronological order, every window of the given
// duration whose buckets are all present. Candidate starts advance by step
// from the first bucket while start+window does not pass the last bucket.
// The sequence is lazy and can be ranged over any number of times.
func DenseIntervals(series models.NormalizedSeries, window, step time.Duration) iter.Seq[models.Interval] {
	return func(yield func(models.Interval) bool) {
		n := series.Len()
		if n == 0 || window <= 0 || step <= 0 || series.Step <= 0 {
			return
		}

		// present[i] counts non-missing buckets in Buckets[:i]
		present := make([]int, n+1)
		for i, b := range series.Buckets {
			present[i+1] = present[i]
			if !b.Missing {
				present[i+1]++
			}
		}

		first, last := series.First(), series.Last()
		for start := first; !start.Add(window).After(last); start = start.Add(step) {
			lo, hi := series.IndexOf(start), series.IndexOf(start.Add(window))
			if hi <= lo || present[hi]-present[lo] != hi-lo {
				continue
			}
			if !yield(models.Interval{Start: start, End: start.Add(window)}) {
				return
			}
		}
	}
}

// FindDenseIntervals collects DenseIntervals into a slice
func FindDenseIntervals(series models.NormalizedSeries, window, step time.Duration) []models.Interval {
	return slices.Collect(DenseIntervals(series, window, step))
}

// LatestInterval returns the interval with the latest start
func LatestInterval(intervals []models.Interval) (models.Interval, bool) {
	if len(intervals) == 0 {
		return models.Interval{}, false
	}
	latest := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.Start.After(latest.Start) {
			latest = iv
		}
	}
	return latest, true
}

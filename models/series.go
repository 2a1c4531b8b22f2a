package models

import "time"

func (s NormalizedSeries) Len() int {
	return len(s.Buckets)
}

// First returns the start of the first bucket, or the zero time for an
// empty series.
func (s NormalizedSeries) First() time.Time {
	if len(s.Buckets) == 0 {
		return time.Time{}
	}
	return s.Buckets[0].Start
}

// Last returns the start of the last bucket.
func (s NormalizedSeries) Last() time.Time {
	if len(s.Buckets) == 0 {
		return time.Time{}
	}
	return s.Buckets[len(s.Buckets)-1].Start
}

// IndexOf returns the index of the first bucket starting at or after t.
// The result is clamped to [0, Len()].
func (s NormalizedSeries) IndexOf(t time.Time) int {
	if len(s.Buckets) == 0 || s.Step <= 0 {
		return 0
	}
	d := t.Sub(s.First())
	if d <= 0 {
		return 0
	}
	idx := int(d / s.Step)
	if d%s.Step != 0 {
		idx++
	}
	if idx > len(s.Buckets) {
		return len(s.Buckets)
	}
	return idx
}

// Slice returns a copy of the buckets starting in [start, end).
func (s NormalizedSeries) Slice(start, end time.Time) []Bucket {
	lo, hi := s.IndexOf(start), s.IndexOf(end)
	if hi <= lo {
		return nil
	}
	out := make([]Bucket, hi-lo)
	copy(out, s.Buckets[lo:hi])
	return out
}

// Samples converts every non-missing bucket back into a raw sample
func (s NormalizedSeries) Samples() []RawSample {
	samples := make([]RawSample, 0, len(s.Buckets))
	for _, b := range s.Buckets {
		if b.Missing {
			continue
		}
		samples = append(samples, RawSample{Timestamp: b.Start, HeartRate: b.HeartRate})
	}
	return samples
}

// Present counts the buckets holding a value
func (s NormalizedSeries) Present() int {
	n := 0
	for _, b := range s.Buckets {
		if !b.Missing {
			n++
		}
	}
	return n
}

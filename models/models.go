package models

import (
	"time"

	"github.com/google/uuid"
)

// RawSample is one heart rate reading parsed from an export row
type RawSample struct {
	Timestamp time.Time `json:"timestamp"`
	HeartRate float64   `json:"heartrate"`
}

// Bucket is one slot of the resampled grid. Missing marks a slot no sample
// fell into; HeartRate is zero and carries no meaning in that case.
type Bucket struct {
	Start     time.Time `json:"start"`
	HeartRate float64   `json:"heartrate"`
	Missing   bool      `json:"missing"`
}

// NormalizedSeries holds buckets spaced exactly Step apart, ascending and
// without holes in the index.
type NormalizedSeries struct {
	Step    time.Duration `json:"step"`
	Buckets []Bucket      `json:"buckets"`
}

// Interval is a half-open time window [Start, End)
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// ZoneDuration stores time spent in a heart rate zone
type ZoneDuration struct {
	Name    string  `json:"name"`
	Low     int     `json:"low"`
	High    int     `json:"high"`
	Minutes float64 `json:"minutes"`
}

// IntervalStats summarises the heart rate over one interval
type IntervalStats struct {
	Interval Interval       `json:"interval"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	Mean     float64        `json:"mean"`
	Samples  int            `json:"samples"`
	Zones    []ZoneDuration `json:"zones"`
	Buckets  []Bucket       `json:"buckets"`
}

// Upload is a manifest record for a stored export file
type Upload struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Format     string    `json:"format"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Report is the outcome of running the whole pipeline over one file
type Report struct {
	Upload    Upload           `json:"upload"`
	Series    NormalizedSeries `json:"-"`
	Intervals []Interval       `json:"intervals"`
	Latest    *IntervalStats   `json:"latest,omitempty"`
}

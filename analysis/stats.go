package analysis

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/pulsefit/models"
)

// ExtractStats computes min, max and mean heart rate over the buckets of
// series that start inside interval, along with the zone breakdown and the
// slice itself for plotting.
func ExtractStats(series models.NormalizedSeries, interval models.Interval) (*models.IntervalStats, error) {
	slice := series.Slice(interval.Start, interval.End)

	values := make([]float64, 0, len(slice))
	for _, b := range slice {
		if !b.Missing {
			values = append(values, b.HeartRate)
		}
	}
	if len(values) == 0 {
		return nil, &models.EmptyIntervalError{Interval: interval}
	}

	minHR, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute minimum heart rate: %w", err)
	}
	maxHR, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute maximum heart rate: %w", err)
	}
	meanHR, err := stats.Mean(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean heart rate: %w", err)
	}

	return &models.IntervalStats{
		Interval: interval,
		Min:      minHR,
		Max:      maxHR,
		Mean:     meanHR,
		Samples:  len(values),
		Zones:    ZoneBreakdown(slice, series.Step),
		Buckets:  slice,
	}, nil
}

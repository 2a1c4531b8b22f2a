package analysis

import (
	"time"

	"github.com/pulsefit/models"
)

type zone struct {
	name      string
	low, high int
}

// Zones ordered bottom to top, bounds in bpm
var heartRateZones = []zone{
	{"Out of Range", 0, 86},
	{"Fat Burn", 86, 121},
	{"Cardio", 121, 147},
	{"Peak", 147, 220},
}

// ZoneBreakdown returns the minutes spent in each heart rate zone. Every
// present bucket contributes step; readings above the top bound count as Peak.
func ZoneBreakdown(buckets []models.Bucket, step time.Duration) []models.ZoneDuration {
	zones := make([]models.ZoneDuration, len(heartRateZones))
	for i, z := range heartRateZones {
		zones[i] = models.ZoneDuration{Name: z.name, Low: z.low, High: z.high}
	}

	minutes := step.Minutes()
	for _, b := range buckets {
		if b.Missing {
			continue
		}
		zones[zoneIndex(b.HeartRate)].Minutes += minutes
	}
	return zones
}

func zoneIndex(hr float64) int {
	for i, z := range heartRateZones {
		if hr < float64(z.high) {
			return i
		}
	}
	return len(heartRateZones) - 1
}

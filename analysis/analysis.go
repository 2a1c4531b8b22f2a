package analysis

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/pulsefit/data"
	"github.com/pulsefit/models"
)

// Options controls the grid and window used by the pipeline
type Options struct {
	BucketWidth time.Duration
	Window      time.Duration
	Step        time.Duration
}

// DefaultOptions matches the wearable export cadence: 2 minute buckets,
// 2 hour windows sliding by 2 minutes.
func DefaultOptions() Options {
	return Options{
		BucketWidth: 2 * time.Minute,
		Window:      2 * time.Hour,
		Step:        2 * time.Minute,
	}
}

// Analyze runs normalize, scan and extract over parsed samples. When no
// dense window exists the report is still returned together with a
// *models.NoDataError.
func Analyze(samples []models.RawSample, opts Options) (*models.Report, error) {
	series, err := Normalize(samples, opts.BucketWidth)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Series:    series,
		Intervals: FindDenseIntervals(series, opts.Window, opts.Step),
	}

	latest, ok := LatestInterval(report.Intervals)
	if !ok {
		return report, &models.NoDataError{Reason: fmt.Sprintf("No valid %s intervals found.", windowLabel(opts.Window))}
	}
	report.Latest, err = ExtractStats(series, latest)
	if err != nil {
		return report, err
	}
	return report, nil
}

// AnalyzeFile reads an export from disk and analyzes it
func AnalyzeFile(path string, format data.Format, opts Options) (*models.Report, error) {
	samples, err := data.ReadFile(path, format)
	if err != nil {
		return nil, err
	}

	report, err := Analyze(samples, opts)
	var fe *models.FormatError
	if errors.As(err, &fe) && fe.Source == "" {
		fe.Source = filepath.Base(path)
	}
	if report != nil {
		report.Upload.Filename = filepath.Base(path)
		report.Upload.Path = path
		report.Upload.Format = format.String()
		log.Printf("Analyzed %s: %d buckets, %d dense intervals", report.Upload.Filename, report.Series.Len(), len(report.Intervals))
	}
	return report, err
}

// windowLabel renders 2h0m0s as "2-hour", falling back to the duration string
func windowLabel(window time.Duration) string {
	if window > 0 && window%time.Hour == 0 {
		return fmt.Sprintf("%d-hour", int(window/time.Hour))
	}
	if window > 0 && window%time.Minute == 0 {
		return fmt.Sprintf("%d-minute", int(window/time.Minute))
	}
	return window.String()
}

package data

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Accepted timestamp layouts, canonical RFC 3339 first. Layouts without an
// offset are read as UTC. Fractional seconds are accepted after the seconds
// field even though the layouts do not spell them out.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a textual timestamp using the accepted layouts
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// epochMillis converts a Unix epoch in milliseconds, the pandas JSON default
func epochMillis(ms float64) time.Time {
	sec, frac := math.Modf(ms / 1000)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

// parseExcelTimestamp accepts textual timestamps and Excel serial dates
func parseExcelTimestamp(value string) (time.Time, bool) {
	if t, ok := ParseTimestamp(value); ok {
		return t, true
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	// second precision, serial dates carry float noise
	return t.Round(time.Second).UTC(), true
}

// parseHeartRate returns ok=false for blank or NaN cells, which pandas
// would load as NaN and drop from the mean.
func parseHeartRate(value string) (hr float64, ok bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "nan") || strings.EqualFold(value, "null") {
		return 0, false, nil
	}
	hr, err = strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(hr, 0) {
		return 0, false, strconv.ErrRange
	}
	return hr, true, nil
}

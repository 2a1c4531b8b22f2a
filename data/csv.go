package data

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/pulsefit/models"
)

func readCSV(r io.Reader) ([]models.RawSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &models.FormatError{Source: "csv", Reason: "failed to read CSV", Err: err}
	}
	if len(rows) == 0 {
		return nil, &models.FormatError{Source: "csv", Reason: "file is empty"}
	}
	samples, err := rowsToSamples(rows, ParseTimestamp)
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// rowsToSamples converts a header row plus data rows into samples. Shared by
// the CSV and XLSX readers.
func rowsToSamples(rows [][]string, parseTime func(string) (time.Time, bool)) ([]models.RawSample, error) {
	tsIdx, hrIdx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	samples := make([]models.RawSample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		tsValue := cell(row, tsIdx)
		ts, ok := parseTime(tsValue)
		if !ok {
			return nil, &models.FormatError{Row: rowNum, Column: timestampColumn, Value: tsValue, Reason: "unparsable timestamp"}
		}
		hrValue := cell(row, hrIdx)
		hr, ok, err := parseHeartRate(hrValue)
		if err != nil {
			return nil, &models.FormatError{Row: rowNum, Column: heartRateColumn, Value: hrValue, Reason: "heart rate is not a number", Err: err}
		}
		if !ok {
			continue
		}
		samples = append(samples, models.RawSample{Timestamp: ts, HeartRate: hr})
	}
	return samples, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

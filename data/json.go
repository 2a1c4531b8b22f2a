package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pulsefit/models"
)

// readJSON accepts the two layouts pandas reads by default: a list of
// records, or an object of columns where each column is a list or an
// index-keyed object.
func readJSON(r io.Reader) ([]models.RawSample, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &models.FormatError{Source: "json", Reason: "failed to read JSON", Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, &models.FormatError{Source: "json", Reason: "file is empty"}
	}

	switch raw[0] {
	case '[':
		var records []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, &models.FormatError{Source: "json", Reason: "expected a list of records", Err: err}
		}
		return recordsToSamples(records)
	case '{':
		var columns map[string]json.RawMessage
		if err := json.Unmarshal(raw, &columns); err != nil {
			return nil, &models.FormatError{Source: "json", Reason: "expected an object of columns", Err: err}
		}
		return columnsToSamples(columns)
	default:
		return nil, &models.FormatError{Source: "json", Reason: "expected a JSON array or object"}
	}
}

func recordsToSamples(records []map[string]json.RawMessage) ([]models.RawSample, error) {
	var keys []string
	for _, rec := range records {
		for k := range rec {
			keys = append(keys, k)
		}
	}
	tsKey, hrKey, err := jsonKeys(keys)
	if err != nil {
		return nil, err
	}

	samples := make([]models.RawSample, 0, len(records))
	for i, rec := range records {
		sample, ok, err := jsonSample(i+1, rec[tsKey], rec[hrKey])
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

func columnsToSamples(columns map[string]json.RawMessage) ([]models.RawSample, error) {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	tsKey, hrKey, err := jsonKeys(keys)
	if err != nil {
		return nil, err
	}

	timestamps, err := columnValues(tsKey, columns[tsKey])
	if err != nil {
		return nil, err
	}
	heartRates, err := columnValues(hrKey, columns[hrKey])
	if err != nil {
		return nil, err
	}
	if len(timestamps) != len(heartRates) {
		return nil, &models.FormatError{Source: "json", Reason: "timestamp and heartrate columns differ in length"}
	}

	samples := make([]models.RawSample, 0, len(timestamps))
	for i := range timestamps {
		sample, ok, err := jsonSample(i+1, timestamps[i], heartRates[i])
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return samples, nil
}

// columnValues flattens a column given as a list or as {"0": v, "1": v, ...}
func columnValues(name string, raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var values []json.RawMessage
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, &models.FormatError{Source: "json", Column: name, Reason: "malformed column", Err: err}
		}
		return values, nil
	}

	var indexed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &indexed); err != nil {
		return nil, &models.FormatError{Source: "json", Column: name, Reason: "column must be a list or an object", Err: err}
	}
	index := make([]string, 0, len(indexed))
	for k := range indexed {
		index = append(index, k)
	}
	sort.Slice(index, func(i, j int) bool {
		a, errA := strconv.Atoi(index[i])
		b, errB := strconv.Atoi(index[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return index[i] < index[j]
	})
	values := make([]json.RawMessage, len(index))
	for i, k := range index {
		values[i] = indexed[k]
	}
	return values, nil
}

func jsonKeys(keys []string) (tsKey, hrKey string, err error) {
	for _, k := range keys {
		name := strings.TrimSpace(k)
		switch {
		case strings.EqualFold(name, timestampColumn):
			tsKey = k
		case strings.EqualFold(name, heartRateColumn):
			hrKey = k
		}
	}
	if tsKey == "" {
		return "", "", &models.FormatError{Source: "json", Column: timestampColumn, Reason: "required column is missing"}
	}
	if hrKey == "" {
		return "", "", &models.FormatError{Source: "json", Column: heartRateColumn, Reason: "required column is missing"}
	}
	return tsKey, hrKey, nil
}

func jsonSample(row int, tsRaw, hrRaw json.RawMessage) (models.RawSample, bool, error) {
	ts, err := jsonTimestamp(tsRaw)
	if err != nil {
		return models.RawSample{}, false, &models.FormatError{Source: "json", Row: row, Column: timestampColumn, Value: string(tsRaw), Reason: "unparsable timestamp"}
	}

	hrRaw = bytes.TrimSpace(hrRaw)
	var hrText string
	if len(hrRaw) > 0 && hrRaw[0] == '"' {
		if err := json.Unmarshal(hrRaw, &hrText); err != nil {
			return models.RawSample{}, false, &models.FormatError{Source: "json", Row: row, Column: heartRateColumn, Value: string(hrRaw), Reason: "heart rate is not a number", Err: err}
		}
	} else {
		hrText = string(hrRaw)
	}
	hr, ok, err := parseHeartRate(hrText)
	if err != nil {
		return models.RawSample{}, false, &models.FormatError{Source: "json", Row: row, Column: heartRateColumn, Value: hrText, Reason: "heart rate is not a number", Err: err}
	}
	return models.RawSample{Timestamp: ts, HeartRate: hr}, ok, nil
}

var errUnparsableTimestamp = errors.New("unparsable timestamp")

func jsonTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, errUnparsableTimestamp
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		if t, ok := ParseTimestamp(s); ok {
			return t, nil
		}
		return time.Time{}, errUnparsableTimestamp
	}
	ms, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return time.Time{}, err
	}
	return epochMillis(ms), nil
}

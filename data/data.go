package data

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pulsefit/models"
)

// Format identifies the tabular layout of an export file
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatXLSX
)

const (
	timestampColumn = "timestamp"
	heartRateColumn = "heartrate"
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name such as "csv" or ".JSON" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return FormatUnknown, &models.FormatError{Source: name, Reason: "unsupported file format"}
}

// DetectFormat picks the format from the file extension
func DetectFormat(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return FormatUnknown, &models.FormatError{Source: filename, Reason: "file has no extension"}
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return FormatUnknown, &models.FormatError{Source: filename, Reason: "unsupported file format"}
	}
	return f, nil
}

// ReadFile parses a heart rate export from disk
func ReadFile(path string, format Format) ([]models.RawSample, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := ReadSamples(f, format)
	if err != nil {
		var fe *models.FormatError
		if errors.As(err, &fe) {
			fe.Source = filepath.Base(path)
		}
		return nil, err
	}
	log.Printf("Read %d samples from %s in %s", len(samples), filepath.Base(path), time.Since(start))
	return samples, nil
}

// ReadSamples parses rows from r according to format
func ReadSamples(r io.Reader, format Format) ([]models.RawSample, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		return readJSON(r)
	case FormatXLSX:
		return readXLSX(r)
	default:
		return nil, &models.FormatError{Source: format.String(), Reason: "unsupported file format"}
	}
}

// columnIndex locates the required columns in a header row
func columnIndex(header []string) (tsIdx, hrIdx int, err error) {
	tsIdx, hrIdx = -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, timestampColumn):
			tsIdx = i
		case strings.EqualFold(name, heartRateColumn):
			hrIdx = i
		}
	}
	if tsIdx < 0 {
		return tsIdx, hrIdx, &models.FormatError{Column: timestampColumn, Reason: "required column is missing"}
	}
	if hrIdx < 0 {
		return tsIdx, hrIdx, &models.FormatError{Column: heartRateColumn, Reason: "required column is missing"}
	}
	return tsIdx, hrIdx, nil
}

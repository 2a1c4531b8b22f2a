package models

import (
	"fmt"
	"strings"
	"time"
)

// FormatError reports a malformed export: a missing column, an unparsable
// timestamp or heart rate, or an unsupported file type.
type FormatError struct {
	Source string // file name or format
	Row    int    // 1-based data row, 0 when not row specific
	Column string
	Value  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %q)", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// EmptyIntervalError is returned when an interval covers no heart rate values
type EmptyIntervalError struct {
	Interval Interval
}

func (e *EmptyIntervalError) Error() string {
	return fmt.Sprintf("interval %s - %s contains no heart rate data",
		e.Interval.Start.Format(time.RFC3339), e.Interval.End.Format(time.RFC3339))
}

// NoDataError is an informational outcome: nothing uploaded yet, or no
// dense interval in the data.
type NoDataError struct {
	Reason string
}

func (e *NoDataError) Error() string {
	return e.Reason
}

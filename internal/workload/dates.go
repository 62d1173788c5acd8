package workload

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange indicates the end date precedes the start date.
var ErrInvalidRange = errors.New("end date precedes start date")

const dateLayout = "2006-01-02"

// ParseDate parses a strict ISO-8601 calendar date (YYYY-MM-DD). Malformed
// input is rejected rather than coerced.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}

// ValidateRange rejects inverted date ranges before any aggregation runs.
func ValidateRange(start, end time.Time) error {
	if end.Before(startOfDay(start)) {
		return ErrInvalidRange
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// inRange reports whether the activity date falls within [start, end].
// Both boundary dates are inclusive.
func inRange(date, start, end time.Time) bool {
	day := startOfDay(date)
	return !day.Before(startOfDay(start)) && !day.After(startOfDay(end))
}

package cli

import (
	"fmt"
	"time"
)

// parseDate accepts an ISO-8601 date or full timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want ISO-8601, e.g. 2026-06-01 or 2026-06-01T00:00:00Z)", s)
}

// parseRange parses the two positional arguments into a half-open
// [start, end) range.
func parseRange(startArg, endArg string) (time.Time, time.Time, error) {
	start, err := parseDate(startArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("range start: %w", err)
	}
	end, err := parseDate(endArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("range end: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("range start %s is not before end %s", startArg, endArg)
	}
	return start, end, nil
}

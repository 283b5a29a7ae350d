package util

import (
	"errors"
	"strings"
	"time"
)

// ParseDateRange accepts YYYY-MM-DD or RFC3339 bounds. A date-only end is
// made inclusive by returning the start of the following day as an
// exclusive bound.
func ParseDateRange(startStr, endStr *string) (start time.Time, hasStart bool, endExclusive time.Time, hasEnd bool, err error) {
	parseAny := func(s string) (t time.Time, ok bool, isDateOnly bool, err error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false, false, nil
		}

		if tt, e := time.Parse(time.RFC3339, s); e == nil {
			return tt, true, false, nil
		}

		if tt, e := time.Parse("2006-01-02", s); e == nil {
			return tt, true, true, nil
		}

		return time.Time{}, false, false, errors.New("invalid date format (use YYYY-MM-DD or RFC3339)")
	}

	if startStr != nil {
		t, ok, _, e := parseAny(*startStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		if ok {
			start = t
			hasStart = true
		}
	}

	if endStr != nil {
		t, ok, dateOnly, e := parseAny(*endStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		if ok {
			if dateOnly {
				t = t.AddDate(0, 0, 1)
			}
			endExclusive = t
			hasEnd = true
		}
	}

	return start, hasStart, endExclusive, hasEnd, nil
}

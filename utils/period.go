package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsePeriod splits a "YYYY-MM" billing period key into calendar year and
// month. Anything that does not parse, or a month outside 1..12, is rejected.
func ParsePeriod(period string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(period), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid period format: %q", period)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 {
		return 0, 0, fmt.Errorf("invalid period year: %q", period)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid period month: %q", period)
	}
	return year, month, nil
}

// FormatPeriod renders the period key for a point in time ("2025-11").
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ParseClock validates a zero-padded "HH:MM" string and returns minutes since
// midnight. Stored clock strings are compared lexicographically, so
// non-canonical forms like "9:30" are rejected instead of normalized.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want zero-padded HH:MM", s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: want zero-padded HH:MM", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: want zero-padded HH:MM", s)
	}
	return hour*60 + minute, nil
}

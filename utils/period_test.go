package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	year, month, err := ParsePeriod("2025-11")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 11, month)

	year, month, err = ParsePeriod("2024-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 1, month)

	for _, bad := range []string{"", "2025", "2025-00", "2025-13", "abcd-ef", "2025-11-01"} {
		_, _, err := ParsePeriod(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "2025-11", FormatPeriod(time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01", FormatPeriod(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	// unpadded and otherwise non-canonical forms would break lexicographic
	// comparison of stored times, so they must be rejected, not parsed.
	for _, bad := range []string{"", "24:00", "9am", "12:60", "9:30", "09:3", " 9:30", "+9:30", "09:30:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

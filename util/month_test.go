package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "january_2026", MonthKey(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "december_2025", MonthKey(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)))
}

func TestPreviousMonthCrossesYearBoundary(t *testing.T) {
	jan := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)
	prev := PreviousMonth(jan)
	assert.Equal(t, time.December, prev.Month())
	assert.Equal(t, 2025, prev.Year())
	assert.Equal(t, "december_2025", PreviousMonthKey(jan))

	mar := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "february_2026", PreviousMonthKey(mar))
}

func TestMonthKeysForYear(t *testing.T) {
	keys := MonthKeysForYear(2026)
	require.Len(t, keys, 12)
	assert.Equal(t, "january_2026", keys[0])
	assert.Equal(t, "december_2026", keys[11])
}

func TestResolveMonthKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", CurrentMonthKey(), true},
		{"current", CurrentMonthKey(), true},
		{"march_2025", "march_2025", true},
		{"March_2025", "march_2025", true},
		{"smarch", "", false},
		{"smarch_2025", "", false},
		{"january_banana", "", false},
		{"january_", "", false},
		{"january_-5", "", false},
		{"january_0", "", false},
	}
	for _, tc := range tests {
		got, ok := ResolveMonthKey(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}

	// A bare month name resolves against the current year.
	got, ok := ResolveMonthKey("January")
	require.True(t, ok)
	assert.Equal(t, MonthKey(time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)), got)
}

func TestPartitionCollection(t *testing.T) {
	assert.Equal(t, "bookings_august_2026", PartitionCollection("august_2026"))
}

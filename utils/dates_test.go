package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
		valid   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:30", 0, false},
		{"nine", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.clock)
		if tc.valid {
			require.NoError(t, err, tc.clock)
			assert.Equal(t, tc.minutes, got, tc.clock)
		} else {
			assert.Error(t, err, tc.clock)
		}
	}
}

func TestCombineDateClock(t *testing.T) {
	date := time.Date(2026, 3, 15, 17, 45, 12, 0, time.Local)

	got, err := CombineDateClock(date, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.Local), got)

	_, err = CombineDateClock(date, "bogus")
	assert.Error(t, err)
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	assert.InDelta(t, 2.0, HoursUntil(now.Add(2*time.Hour), now), 0.001)
	assert.InDelta(t, -1.5, HoursUntil(now.Add(-90*time.Minute), now), 0.001)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 3, 15, 23, 50, 0, 0, time.Local)
	end := time.Date(2026, 3, 18, 0, 10, 0, 0, time.Local)
	assert.Equal(t, 3, DaysBetween(start, end))
}

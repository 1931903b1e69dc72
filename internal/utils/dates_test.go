package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-06-03")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("06/03/2024")
	require.Error(t, err)

	_, err = ParseDate("")
	require.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "2024-06-03", FormatDate(time.Date(2024, 6, 3, 15, 4, 5, 0, time.UTC)))
}

func TestNormalize(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	normalized := Normalize(time.Date(2024, 6, 3, 23, 59, 0, 0, loc))
	require.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), normalized)
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
	}{
		{"monday maps to itself", monday},
		{"wednesday", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)},
		{"sunday stays in the same week", time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, monday, WeekStart(tt.date))
		})
	}
}

func TestWeekEnd(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), WeekEnd(monday))
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15T09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T09:30:00.250", time.Date(2024, 1, 15, 9, 30, 0, 250_000_000, time.UTC)},
		{"2024-01-15T09:30:00Z", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T11:30:00+02:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T15:00:00+0530", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15 04:30:00-0500", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T15:00+0530", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15T09:30", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"  2024-01-15T09:30:00  ", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseISOTimestamp(tc.in)
		require.NoError(t, err, "in=%q", tc.in)
		assert.True(t, tc.want.Equal(got), "in=%q got=%s", tc.in, got)
	}
}

func TestParseISOTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-01T00:00:00", "15/01/2024", "2024-01-15T25:00:00"} {
		_, err := ParseISOTimestamp(in)
		assert.Error(t, err, "in=%q", in)
	}
}

func TestFormatISOTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-15T09:30:00", FormatISOTimestamp(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-15T09:30:00.250000", FormatISOTimestamp(time.Date(2024, 1, 15, 9, 30, 0, 250_000_000, time.UTC)))

	plusTwo := time.FixedZone("plus2", 2*60*60)
	assert.Equal(t, "2024-01-15T09:30:00", FormatISOTimestamp(time.Date(2024, 1, 15, 11, 30, 0, 0, plusTwo)))
}

func TestTimestampRoundTrip(t *testing.T) {
	in := "2024-01-15T09:30:00"
	parsed, err := ParseISOTimestamp(in)
	require.NoError(t, err)
	assert.Equal(t, in, FormatISOTimestamp(parsed))
}

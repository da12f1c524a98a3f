package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregrid/models"
)

func TestNormalizeDay(t *testing.T) {
	cases := []struct {
		input string
		want  models.DayCode
	}{
		{"Monday", models.DayMonday},
		{"mon", models.DayMonday},
		{"MON", models.DayMonday},
		{"  tuesday ", models.DayTuesday},
		{"Wed", models.DayWednesday},
		{"THURSDAY", models.DayThursday},
		{"fri", models.DayFriday},
		{"Saturday", models.DaySaturday},
		{"sun", models.DaySunday},
	}
	for _, tc := range cases {
		got, err := NormalizeDay(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeDay_Rejects(t *testing.T) {
	for _, input := range []string{"", "Mondays", "someday", "m", "weekend", "1"} {
		_, err := NormalizeDay(input)
		assert.ErrorIs(t, err, ErrInvalidDayCode, "input %q", input)
	}
}

func TestNormalizeTime_TwelveHourConversion(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"9am", "09:00"},
		{"5:30 PM", "17:30"},
		{"12am", "00:00"},
		{"12pm", "12:00"},
		{"5:00PM", "17:00"},
		{"9:30 pm", "21:30"},
		{"12:15 AM", "00:15"},
	}
	for _, tc := range cases {
		got, err := NormalizeTime(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeTime_TwentyFourHour(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"9:05", "09:05"},
		{"09:05", "09:05"},
		{"23:59", "23:59"},
		{"0:00", "00:00"},
		{"17:00:30", "17:00"}, // seconds dropped
		{"7", "07:00"},
	}
	for _, tc := range cases {
		got, err := NormalizeTime(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeTime_Idempotent(t *testing.T) {
	for _, canonical := range []string{"00:00", "09:00", "12:00", "17:30", "23:59"} {
		got, err := NormalizeTime(canonical)
		require.NoError(t, err)
		assert.Equal(t, canonical, got)
	}
}

func TestNormalizeTime_Rejects(t *testing.T) {
	for _, input := range []string{"", "25:00", "12:70", "24:00", "13pm", "0am", "noon", "9;00", "-1:00"} {
		_, err := NormalizeTime(input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
	}
}

func TestParseTimeRange(t *testing.T) {
	r := ParseTimeRange("9am to 5pm")
	require.NotNil(t, r)
	assert.Equal(t, "09:00", r.TimeFrom)
	assert.Equal(t, "17:00", r.TimeTo)

	r = ParseTimeRange("9:30-17:45")
	require.NotNil(t, r)
	assert.Equal(t, "09:30", r.TimeFrom)
	assert.Equal(t, "17:45", r.TimeTo)

	r = ParseTimeRange("10:00 – 14:00") // en dash
	require.NotNil(t, r)
	assert.Equal(t, "10:00", r.TimeFrom)
	assert.Equal(t, "14:00", r.TimeTo)

	r = ParseTimeRange("8 TO 4pm")
	require.NotNil(t, r)
	assert.Equal(t, "08:00", r.TimeFrom)
	assert.Equal(t, "16:00", r.TimeTo)
}

func TestParseTimeRange_RejectsNonIncreasing(t *testing.T) {
	// Zero-length and wraparound ranges are never valid working time.
	assert.Nil(t, ParseTimeRange("5pm to 5pm"))
	assert.Nil(t, ParseTimeRange("17:00 to 9:00"))
	assert.Nil(t, ParseTimeRange("9 to 5")) // normalizes to 09:00 and 05:00
}

func TestParseTimeRange_RejectsGarbage(t *testing.T) {
	assert.Nil(t, ParseTimeRange(""))
	assert.Nil(t, ParseTimeRange("9am"))
	assert.Nil(t, ParseTimeRange("whenever to whenever"))
}

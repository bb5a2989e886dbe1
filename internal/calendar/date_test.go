package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, Date("2025-02-28"), d)
	assert.Equal(t, Date("2025-03-01"), d.AddDays(1))

	_, err = ParseDate("2025-02-30")
	assert.Error(t, err)
}

func TestDaysInRange(t *testing.T) {
	days := DaysInRange("2024-12-30", "2025-01-02")
	assert.Equal(t, []Date{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}, days)

	assert.Nil(t, DaysInRange("2025-01-02", "2025-01-01"))
	assert.Len(t, DaysInRange("2025-01-01", "2025-01-01"), 1)
}

func TestWeekRange_StartsMonday(t *testing.T) {
	// 2025-01-01 is a Wednesday.
	start, end := WeekRange("2025-01-01")
	assert.Equal(t, Date("2024-12-30"), start)
	assert.Equal(t, Date("2025-01-05"), end)
	assert.Equal(t, time.Monday, start.Weekday())

	// Sunday belongs to the week that started six days earlier.
	start, _ = WeekRange("2025-01-05")
	assert.Equal(t, Date("2024-12-30"), start)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange("2024-02-10")
	assert.Equal(t, Date("2024-02-01"), start)
	assert.Equal(t, Date("2024-02-29"), end)
}

func TestDateOf(t *testing.T) {
	tokyo, err := LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	instant := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Date("2025-01-01"), DateOf(instant, time.UTC))
	assert.Equal(t, Date("2025-01-02"), DateOf(instant, tokyo))
}

func TestClip(t *testing.T) {
	days := DaysInRange("2025-01-01", "2025-01-07")
	assert.Equal(t, []Date{"2025-01-03", "2025-01-04"}, Clip(days, "2025-01-03", "2025-01-04"))
}

func TestCountdown(t *testing.T) {
	goal := Date("2025-01-11")
	v := Countdown("2025-01-01", &goal, "2025-01-04")
	assert.True(t, v.HasGoal)
	assert.Equal(t, 7, v.DaysLeft)
	assert.Equal(t, 3, v.DaysSinceStart)
	assert.Equal(t, 30, v.ProgressPct)

	past := Countdown("2025-01-01", &goal, "2025-02-01")
	assert.Equal(t, 0, past.DaysLeft)
	assert.Equal(t, 100, past.ProgressPct)

	none := Countdown("2025-01-01", nil, "2025-01-04")
	assert.False(t, none.HasGoal)
	assert.Equal(t, 3, none.DaysSinceStart)
}

package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	schedule, err := ParseSchedule("19:00-22:00, Mon-Fri")
	require.NoError(t, err)
	require.Len(t, schedule.Windows, 1)
	window := schedule.Windows[0]
	assert.Equal(t, "19:00", window.Start)
	assert.Equal(t, "22:00", window.End)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, window.Days)
}

func TestParseScheduleSingleDay(t *testing.T) {
	schedule, err := ParseSchedule("10:30-12:00, Sat")
	require.NoError(t, err)
	assert.Equal(t, []int{6}, schedule.Windows[0].Days)
}

func TestParseScheduleInvalid(t *testing.T) {
	for _, scheduleStr := range []string{
		"",
		"19:00-22:00",       // no days
		"19:00, Mon-Fri",    // no time range
		"25:00-26:00, Mon",  // bad hours
		"19:00-22:00, Blah", // unknown day
		"19:00-22:00, Fri-Mon",
	} {
		_, err := ParseSchedule(scheduleStr)
		assert.Equal(t, ErrInvalidSchedule, err, "schedule %q must be rejected", scheduleStr)
	}
}

func TestScheduleCovers(t *testing.T) {
	schedule, err := ParseSchedule("19:00-22:00, Mon-Fri")
	require.NoError(t, err)

	// 2026-08-19 is a Wednesday, 2026-08-22 a Saturday.
	wedEvening := time.Date(2026, 8, 19, 20, 30, 0, 0, time.UTC)
	wedMorning := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	satEvening := time.Date(2026, 8, 22, 20, 30, 0, 0, time.UTC)
	wedLowerBound := time.Date(2026, 8, 19, 19, 0, 0, 0, time.UTC)
	wedUpperBound := time.Date(2026, 8, 19, 22, 0, 0, 0, time.UTC)

	assert.True(t, schedule.Covers(wedEvening))
	assert.False(t, schedule.Covers(wedMorning))
	assert.False(t, schedule.Covers(satEvening))
	assert.True(t, schedule.Covers(wedLowerBound), "window bounds are inclusive")
	assert.True(t, schedule.Covers(wedUpperBound), "window bounds are inclusive")
}

func TestScheduleCoversSunday(t *testing.T) {
	schedule, err := ParseSchedule("09:00-11:00, Sun")
	require.NoError(t, err)

	// 2026-08-23 is a Sunday.
	sunMorning := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	assert.True(t, schedule.Covers(sunMorning))
}

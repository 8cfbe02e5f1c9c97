//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"washbook/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func mustTemplate(t *testing.T, day int, start, end string, capacity int) *schedule.Template {
	t.Helper()
	tpl, err := schedule.NewTemplate(uuid.New(), day, mustTime(t, start), mustTime(t, end), true, capacity)
	require.NoError(t, err)
	return tpl
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		minutes int
		wantErr bool
	}{
		{name: "morning", in: "09:30", minutes: 570},
		{name: "midnight", in: "00:00", minutes: 0},
		{name: "last minute of the day", in: "23:59", minutes: 1439},
		{name: "missing leading zero still parses", in: "9:30", minutes: 570},
		{name: "out of range hour", in: "24:00", wantErr: true},
		{name: "garbage", in: "morning", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tod, err := schedule.ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.minutes, tod.Minutes())
		})
	}
}

func TestParseDateAndWeekday(t *testing.T) {
	day, err := schedule.ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)

	_, err = schedule.ParseDate("02/03/2026")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)

	// 2026-03-02 is a Monday; the scheme counts Monday as 0.
	assert.Equal(t, 0, schedule.Weekday(day))
	assert.Equal(t, 6, schedule.Weekday(day.AddDate(0, 0, 6)))
}

func TestNewTemplate(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		_, err := schedule.NewTemplate(uuid.New(), 0, mustTime(t, "10:00"), mustTime(t, "09:00"), true, 3)
		assert.ErrorIs(t, err, schedule.ErrInvalidTimeRange)
	})

	t.Run("day of week bounds", func(t *testing.T) {
		_, err := schedule.NewTemplate(uuid.New(), 7, mustTime(t, "09:00"), mustTime(t, "10:00"), true, 3)
		assert.ErrorIs(t, err, schedule.ErrInvalidDayOfWeek)
	})

	t.Run("zero capacity", func(t *testing.T) {
		_, err := schedule.NewTemplate(uuid.New(), 0, mustTime(t, "09:00"), mustTime(t, "10:00"), true, 0)
		assert.ErrorIs(t, err, schedule.ErrInvalidCapacity)
	})
}

func TestAvailableSlots(t *testing.T) {
	templates := []*schedule.Template{
		mustTemplate(t, 0, "14:00", "15:00", 2),
		mustTemplate(t, 0, "09:00", "10:00", 2),
		mustTemplate(t, 0, "10:00", "11:00", 2),
	}

	t.Run("nothing occupied returns all, ordered by start", func(t *testing.T) {
		open := schedule.AvailableSlots(templates, nil)
		require.Len(t, open, 3)
		assert.Equal(t, "09:00", open[0].Start().String())
		assert.Equal(t, "10:00", open[1].Start().String())
		assert.Equal(t, "14:00", open[2].Start().String())
	})

	t.Run("occupied start times are filtered out", func(t *testing.T) {
		open := schedule.AvailableSlots(templates, []schedule.TimeOfDay{mustTime(t, "10:00")})
		require.Len(t, open, 2)
		assert.Equal(t, "09:00", open[0].Start().String())
		assert.Equal(t, "14:00", open[1].Start().String())
	})

	t.Run("unavailable templates never show up", func(t *testing.T) {
		closed, err := schedule.NewTemplate(uuid.New(), 0, mustTime(t, "12:00"), mustTime(t, "13:00"), false, 2)
		require.NoError(t, err)

		open := schedule.AvailableSlots(append(templates, closed), nil)
		for _, tpl := range open {
			assert.NotEqual(t, "12:00", tpl.Start().String())
		}
	})

	t.Run("all slots taken", func(t *testing.T) {
		occupied := []schedule.TimeOfDay{mustTime(t, "09:00"), mustTime(t, "10:00"), mustTime(t, "14:00")}
		open := schedule.AvailableSlots(templates, occupied)
		assert.Empty(t, open)
	})
}

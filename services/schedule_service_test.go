package services

import (
	"testing"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock  string
		hour   int
		minute int
		valid  bool
	}{
		{"09:00", 9, 0, true},
		{"00:00", 0, 0, true},
		{"23:59", 23, 59, true},
		{"24:00", 0, 0, false},
		{"09:60", 0, 0, false},
		{"9am", 0, 0, false},
		{"", 0, 0, false},
		{"09:00:00", 0, 0, false},
	}
	for _, tc := range cases {
		hour, minute, err := ParseClock(tc.clock)
		if !tc.valid {
			assert.ErrorIs(t, err, ErrInvalidClock, "clock %q", tc.clock)
			continue
		}
		require.NoError(t, err, "clock %q", tc.clock)
		assert.Equal(t, tc.hour, hour, "clock %q", tc.clock)
		assert.Equal(t, tc.minute, minute, "clock %q", tc.clock)
	}
}

func TestGenerateSlots(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := TimeWindow{
		Start: day.Add(9 * time.Hour),
		End:   day.Add(17 * time.Hour),
	}

	t.Run("30 minute service over a full day", func(t *testing.T) {
		slots := GenerateSlots(window, 30, 30)
		require.Len(t, slots, 16)
		assert.Equal(t, day.Add(9*time.Hour), slots[0])
		// The last slot must still finish by 17:00.
		assert.Equal(t, day.Add(16*time.Hour+30*time.Minute), slots[15])
	})

	t.Run("last slot never runs past the window end", func(t *testing.T) {
		slots := GenerateSlots(window, 90, 30)
		require.NotEmpty(t, slots)
		last := slots[len(slots)-1]
		assert.False(t, last.Add(90*time.Minute).After(window.End))
		assert.Equal(t, day.Add(15*time.Hour+30*time.Minute), last)
	})

	t.Run("service longer than window yields nothing", func(t *testing.T) {
		short := TimeWindow{Start: window.Start, End: window.Start.Add(time.Hour)}
		assert.Empty(t, GenerateSlots(short, 90, 30))
	})

	t.Run("service exactly filling the window yields one slot", func(t *testing.T) {
		short := TimeWindow{Start: window.Start, End: window.Start.Add(time.Hour)}
		slots := GenerateSlots(short, 60, 30)
		require.Len(t, slots, 1)
		assert.Equal(t, window.Start, slots[0])
	})

	t.Run("non-positive step falls back to the default", func(t *testing.T) {
		slots := GenerateSlots(window, 30, 0)
		assert.Len(t, slots, 16)
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(window, 0, 30))
	})
}

func TestFilterConflicting(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window := TimeWindow{Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour)}
	slots := GenerateSlots(window, 60, 30) // 09:00 09:30 10:00 10:30 11:00
	require.Len(t, slots, 5)

	busy := []models.Appointment{{
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}}

	free := FilterConflicting(slots, 60, busy)
	require.Len(t, free, 2)
	// 09:30-10:30, 10:00-11:00 and 10:30-11:30 all overlap the booking;
	// 09:00-10:00 and 11:00-12:00 touch it only at the boundary.
	assert.Equal(t, day.Add(9*time.Hour), free[0])
	assert.Equal(t, day.Add(11*time.Hour), free[1])
}

func TestFilterConflictingIgnoresBackToBack(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	slots := []time.Time{day.Add(9 * time.Hour)}
	busy := []models.Appointment{{
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}}
	// A 60-minute slot ending exactly when the booking starts is free.
	assert.Len(t, FilterConflicting(slots, 60, busy), 1)
	// A 61-minute one is not.
	assert.Empty(t, FilterConflicting(slots, 61, busy))
}

func TestResolveWorkingWindow(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	worker := seedWorker(t, db, vendor.ID, "Dana")

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, worker.ID, int(time.Monday), "09:00", "17:00")

	t.Run("weekly pattern applies when no override exists", func(t *testing.T) {
		window, err := ResolveWorkingWindow(db, worker.ID, monday)
		require.NoError(t, err)
		require.NotNil(t, window)
		assert.Equal(t, monday.Add(9*time.Hour), window.Start)
		assert.Equal(t, monday.Add(17*time.Hour), window.End)
	})

	t.Run("closed when the weekday has no row", func(t *testing.T) {
		sunday := nextWeekday(time.Sunday)
		window, err := ResolveWorkingWindow(db, worker.ID, sunday)
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("day off override wins over the weekly pattern", func(t *testing.T) {
		offMonday := monday.AddDate(0, 0, 7)
		seedDayOff(t, db, worker.ID, offMonday)

		window, err := ResolveWorkingWindow(db, worker.ID, offMonday)
		require.NoError(t, err)
		assert.Nil(t, window)

		// The surrounding Mondays are untouched.
		window, err = ResolveWorkingWindow(db, worker.ID, monday)
		require.NoError(t, err)
		assert.NotNil(t, window)
	})

	t.Run("explicit override window replaces the weekly one entirely", func(t *testing.T) {
		shortMonday := monday.AddDate(0, 0, 14)
		startClock, endClock := "12:00", "15:00"
		override := models.ScheduleOverride{
			ID:        uuid.New(),
			WorkerID:  worker.ID,
			Date:      shortMonday,
			StartTime: &startClock,
			EndTime:   &endClock,
		}
		require.NoError(t, db.Create(&override).Error)

		window, err := ResolveWorkingWindow(db, worker.ID, shortMonday)
		require.NoError(t, err)
		require.NotNil(t, window)
		assert.Equal(t, shortMonday.Add(12*time.Hour), window.Start)
		assert.Equal(t, shortMonday.Add(15*time.Hour), window.End)
	})

	t.Run("weekly row marked unavailable means closed", func(t *testing.T) {
		tuesday := nextWeekday(time.Tuesday)
		row := models.WeeklyAvailability{
			ID:          uuid.New(),
			WorkerID:    worker.ID,
			DayOfWeek:   int(time.Tuesday),
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: false,
		}
		require.NoError(t, db.Create(&row).Error)

		window, err := ResolveWorkingWindow(db, worker.ID, tuesday)
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("inverted window is treated as closed", func(t *testing.T) {
		wednesday := nextWeekday(time.Wednesday)
		seedWeekly(t, db, worker.ID, int(time.Wednesday), "17:00", "09:00")

		window, err := ResolveWorkingWindow(db, worker.ID, wednesday)
		require.NoError(t, err)
		assert.Nil(t, window)
	})
}

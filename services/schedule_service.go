package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultSlotStepMinutes = 30

// TimeWindow is a worker's effective open interval [Start, End) on one
// concrete date, in vendor-local civil time.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// ParseClock parses an "HH:MM" clock string with minute precision.
func ParseClock(clock string) (hour, minute int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidClock
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidClock
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidClock
	}
	return hour, minute, nil
}

// ClockOnDate anchors an "HH:MM" clock string onto a calendar date.
func ClockOnDate(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC), nil
}

// DateOnly strips the time-of-day component from t.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ResolveWorkingWindow merges a worker's weekly pattern and date override
// into one effective open window for the given date. A nil window means the
// worker is closed that day.
//
// An override is a binary switch: when one exists for the date it fully
// replaces the weekly row, whether it opens a window or takes the day off.
func ResolveWorkingWindow(db *gorm.DB, workerID uuid.UUID, date time.Time) (*TimeWindow, error) {
	day := DateOnly(date)

	var override models.ScheduleOverride
	err := db.Where("worker_id = ? AND date = ?", workerID, day).First(&override).Error
	if err == nil {
		if override.IsDayOff || override.StartTime == nil || override.EndTime == nil {
			return nil, nil
		}
		return windowFromClocks(day, *override.StartTime, *override.EndTime)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load schedule override: %w", err)
	}

	var weekly models.WeeklyAvailability
	err = db.Where("worker_id = ? AND day_of_week = ?", workerID, int(day.Weekday())).First(&weekly).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load weekly availability: %w", err)
	}
	if !weekly.IsAvailable || weekly.StartTime == "" || weekly.EndTime == "" {
		return nil, nil
	}
	return windowFromClocks(day, weekly.StartTime, weekly.EndTime)
}

func windowFromClocks(day time.Time, startClock, endClock string) (*TimeWindow, error) {
	start, err := ClockOnDate(day, startClock)
	if err != nil {
		return nil, err
	}
	end, err := ClockOnDate(day, endClock)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, nil
	}
	return &TimeWindow{Start: start, End: end}, nil
}

// GenerateSlots enumerates candidate start times inside window, advancing by
// stepMinutes. A slot whose end would pass the window end is never emitted.
func GenerateSlots(window TimeWindow, durationMinutes, stepMinutes int) []time.Time {
	if durationMinutes <= 0 {
		return nil
	}
	if stepMinutes <= 0 {
		stepMinutes = DefaultSlotStepMinutes
	}

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute

	var slots []time.Time
	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(step) {
		slots = append(slots, cur)
	}
	return slots
}

// FilterConflicting drops the slots whose [start, start+duration) interval
// overlaps any of the given appointments. Callers are expected to pass only
// appointments that occupy the worker's time (pending or confirmed).
func FilterConflicting(slots []time.Time, durationMinutes int, busy []models.Appointment) []time.Time {
	if len(busy) == 0 {
		return slots
	}

	duration := time.Duration(durationMinutes) * time.Minute
	var free []time.Time
	for _, slot := range slots {
		slotEnd := slot.Add(duration)
		conflict := false
		for _, appt := range busy {
			if rangesOverlap(slot, slotEnd, appt.StartTime, appt.EndTime) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}
	return free
}

// Half-open intervals [aStart, aEnd) and [bStart, bEnd) overlap when
// aStart < bEnd && bStart < aEnd.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

package services

import (
	"testing"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointment(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	worker := seedWorker(t, db, vendor.ID, "Dana")
	qualifyWorker(t, db, worker.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, worker.ID, int(time.Monday), "09:00", "17:00")

	appt, err := BookAppointment(db, BookingRequest{
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		Date:      monday,
		SlotTime:  "10:00",
		UserID:    customer.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentStatusPending, appt.Status)
	assert.Equal(t, worker.ID, appt.WorkerID)
	assert.Equal(t, monday.Add(10*time.Hour), appt.StartTime)
	assert.Equal(t, monday.Add(11*time.Hour), appt.EndTime)
	assert.Equal(t, service.Price, appt.PriceAtBooking)
	assert.Len(t, appt.Reference, 8)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", appt.ID).Error)
	assert.Equal(t, models.AppointmentStatusPending, stored.Status)
}

func TestBookAppointmentDoubleBooking(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	worker := seedWorker(t, db, vendor.ID, "Dana")
	qualifyWorker(t, db, worker.ID, service.ID)
	alice := seedUser(t, db)
	bob := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, worker.ID, int(time.Monday), "09:00", "17:00")

	req := BookingRequest{
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		WorkerID:  &worker.ID,
		Date:      monday,
		SlotTime:  "10:00",
		UserID:    alice.ID,
	}
	_, err := BookAppointment(db, req)
	require.NoError(t, err)

	// Second attempt for the same worker and slot loses.
	req.UserID = bob.ID
	_, err = BookAppointment(db, req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookAppointmentAssignsWorkersInOrder(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	dana := seedWorker(t, db, vendor.ID, "Dana")
	eli := seedWorker(t, db, vendor.ID, "Eli")
	qualifyWorker(t, db, dana.ID, service.ID)
	qualifyWorker(t, db, eli.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, dana.ID, int(time.Monday), "09:00", "17:00")
	seedWeekly(t, db, eli.ID, int(time.Monday), "09:00", "17:00")

	req := BookingRequest{
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		Date:      monday,
		SlotTime:  "10:00",
		UserID:    customer.ID,
	}

	// With both free, the earliest-created worker wins.
	first, err := BookAppointment(db, req)
	require.NoError(t, err)
	assert.Equal(t, dana.ID, first.WorkerID)

	// With Dana taken, the same request falls through to Eli.
	second, err := BookAppointment(db, req)
	require.NoError(t, err)
	assert.Equal(t, eli.ID, second.WorkerID)

	// With both taken, the slot is gone.
	_, err = BookAppointment(db, req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestBookAppointmentPinnedWorkerBusy(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	dana := seedWorker(t, db, vendor.ID, "Dana")
	eli := seedWorker(t, db, vendor.ID, "Eli")
	qualifyWorker(t, db, dana.ID, service.ID)
	qualifyWorker(t, db, eli.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, dana.ID, int(time.Monday), "09:00", "17:00")
	seedWeekly(t, db, eli.ID, int(time.Monday), "09:00", "17:00")
	seedAppointment(t, db, vendor, service, dana.ID, customer.ID,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour), models.AppointmentStatusConfirmed)

	// A pinned busy worker fails even though another worker is free.
	_, err := BookAppointment(db, BookingRequest{
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		WorkerID:  &dana.ID,
		Date:      monday,
		SlotTime:  "10:00",
		UserID:    customer.ID,
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestBookAppointmentRejections(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	dana := seedWorker(t, db, vendor.ID, "Dana")
	eli := seedWorker(t, db, vendor.ID, "Eli")
	qualifyWorker(t, db, dana.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	seedWeekly(t, db, dana.ID, int(time.Monday), "09:00", "17:00")

	base := BookingRequest{
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		Date:      monday,
		SlotTime:  "10:00",
		UserID:    customer.ID,
	}

	t.Run("same day", func(t *testing.T) {
		req := base
		req.Date = time.Now()
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrSameDayBooking)
	})

	t.Run("malformed slot time", func(t *testing.T) {
		req := base
		req.SlotTime = "ten"
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrInvalidClock)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		req := base
		req.VendorID = uuid.New()
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrVendorNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := base
		req.ServiceID = uuid.New()
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unqualified pinned worker", func(t *testing.T) {
		req := base
		req.WorkerID = &eli.ID
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrWorkerNotQualified)
	})

	t.Run("unknown pinned worker", func(t *testing.T) {
		req := base
		unknown := uuid.New()
		req.WorkerID = &unknown
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrWorkerNotFound)
	})

	t.Run("slot outside the working window", func(t *testing.T) {
		req := base
		req.SlotTime = "18:00"
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("slot not aligned to the grid", func(t *testing.T) {
		req := base
		req.SlotTime = "10:15"
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("worker day off", func(t *testing.T) {
		offMonday := monday.AddDate(0, 0, 7)
		seedDayOff(t, db, dana.ID, offMonday)
		req := base
		req.Date = offMonday
		_, err := BookAppointment(db, req)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestReassignAppointmentWorker(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	dana := seedWorker(t, db, vendor.ID, "Dana")
	eli := seedWorker(t, db, vendor.ID, "Eli")
	fay := seedWorker(t, db, vendor.ID, "Fay")
	qualifyWorker(t, db, dana.ID, service.ID)
	qualifyWorker(t, db, eli.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	appt := seedAppointment(t, db, vendor, service, dana.ID, customer.ID,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour), models.AppointmentStatusConfirmed)

	t.Run("moves to a free qualified worker", func(t *testing.T) {
		moved, err := ReassignAppointmentWorker(db, appt.ID, eli.ID)
		require.NoError(t, err)
		assert.Equal(t, eli.ID, moved.WorkerID)
	})

	t.Run("rejects an unqualified worker", func(t *testing.T) {
		_, err := ReassignAppointmentWorker(db, appt.ID, fay.ID)
		assert.ErrorIs(t, err, ErrWorkerNotQualified)
	})

	t.Run("rejects a conflicting target", func(t *testing.T) {
		// Dana now has her own overlapping booking.
		seedAppointment(t, db, vendor, service, dana.ID, customer.ID,
			monday.Add(10*time.Hour+30*time.Minute), monday.Add(11*time.Hour+30*time.Minute),
			models.AppointmentStatusPending)
		_, err := ReassignAppointmentWorker(db, appt.ID, dana.ID)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})
}

func TestAdjustAppointmentDuration(t *testing.T) {
	db := openTestDB(t)
	vendor := seedVendor(t, db, 30)
	service := seedService(t, db, vendor.ID, 60)
	worker := seedWorker(t, db, vendor.ID, "Dana")
	qualifyWorker(t, db, worker.ID, service.ID)
	customer := seedUser(t, db)

	monday := nextWeekday(time.Monday)
	first := seedAppointment(t, db, vendor, service, worker.ID, customer.ID,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour), models.AppointmentStatusConfirmed)
	seedAppointment(t, db, vendor, service, worker.ID, customer.ID,
		monday.Add(11*time.Hour), monday.Add(12*time.Hour), models.AppointmentStatusConfirmed)

	t.Run("stretching into the next appointment is rejected", func(t *testing.T) {
		_, err := AdjustAppointmentDuration(db, first.ID, 90)
		assert.ErrorIs(t, err, ErrSlotConflict)

		var unchanged models.Appointment
		require.NoError(t, db.First(&unchanged, "id = ?", first.ID).Error)
		assert.Equal(t, monday.Add(11*time.Hour), unchanged.EndTime)
	})

	t.Run("shrinking is always allowed", func(t *testing.T) {
		updated, err := AdjustAppointmentDuration(db, first.ID, 30)
		require.NoError(t, err)
		assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), updated.EndTime)
	})

	t.Run("stretching into free time works", func(t *testing.T) {
		updated, err := AdjustAppointmentDuration(db, first.ID, 45)
		require.NoError(t, err)
		assert.Equal(t, monday.Add(10*time.Hour+45*time.Minute), updated.EndTime)
	})

	t.Run("non-positive duration is rejected", func(t *testing.T) {
		_, err := AdjustAppointmentDuration(db, first.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("cancelled appointments skip the conflict check", func(t *testing.T) {
		cancelled := seedAppointment(t, db, vendor, service, worker.ID, customer.ID,
			monday.Add(10*time.Hour), monday.Add(11*time.Hour), models.AppointmentStatusCancelledByUser)
		updated, err := AdjustAppointmentDuration(db, cancelled.ID, 120)
		require.NoError(t, err)
		assert.Equal(t, monday.Add(12*time.Hour), updated.EndTime)
	})
}

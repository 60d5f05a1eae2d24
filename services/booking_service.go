package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/bookedly/bookedly_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRequest struct {
	VendorID  uuid.UUID
	ServiceID uuid.UUID
	// WorkerID pins a specific worker; nil lets the engine assign the first
	// free qualified worker in creation order.
	WorkerID *uuid.UUID
	Date     time.Time
	SlotTime string // "HH:MM"
	UserID   uuid.UUID
	Note     *string
}

// BookAppointment validates the requested slot against live data and commits
// one pending appointment, or rejects with a typed reason.
//
// The conflict check and the insert run inside a single transaction holding
// a SELECT ... FOR UPDATE lock on the candidate worker row, so two
// simultaneous attempts for the same worker serialize and exactly one wins.
func BookAppointment(db *gorm.DB, req BookingRequest) (*models.Appointment, error) {
	day := DateOnly(req.Date)

	slotHour, slotMinute, err := ParseClock(req.SlotTime)
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), slotHour, slotMinute, 0, 0, time.UTC)

	if !day.After(DateOnly(time.Now())) {
		return nil, ErrSameDayBooking
	}

	var vendor models.Vendor
	if err := db.Where("id = ? AND status = ?", req.VendorID, "active").First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("load vendor: %w", err)
	}

	// Duration and price are read from the service record now, never trusted
	// from client input.
	var service models.Service
	if err := db.Where("id = ? AND vendor_id = ? AND is_active = ?", req.ServiceID, req.VendorID, true).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("load service: %w", err)
	}
	if service.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	candidates, err := QualifiedWorkers(db, req.VendorID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if req.WorkerID != nil {
		var pinned *models.Worker
		for i := range candidates {
			if candidates[i].ID == *req.WorkerID {
				pinned = &candidates[i]
				break
			}
		}
		if pinned == nil {
			var exists models.Worker
			if err := db.Where("id = ? AND vendor_id = ?", *req.WorkerID, req.VendorID).First(&exists).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrWorkerNotFound
				}
				return nil, fmt.Errorf("load worker: %w", err)
			}
			return nil, ErrWorkerNotQualified
		}
		candidates = []models.Worker{*pinned}
	}

	var appointment *models.Appointment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		for _, candidate := range candidates {
			// Serialize concurrent bookings per worker before re-checking
			// conflicts.
			var worker models.Worker
			if err := lockForUpdate(tx).First(&worker, "id = ?", candidate.ID).Error; err != nil {
				return fmt.Errorf("lock worker: %w", err)
			}

			ok, err := slotStillOpen(tx, worker.ID, day, start, end, service.DurationMinutes, vendor.SlotStepMinutes)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			reference, err := utils.GenerateUniqueReference(tx)
			if err != nil {
				return fmt.Errorf("generate reference: %w", err)
			}

			appointment = &models.Appointment{
				ID:             uuid.New(),
				VendorID:       req.VendorID,
				ServiceID:      req.ServiceID,
				WorkerID:       worker.ID,
				UserID:         req.UserID,
				StartTime:      start,
				EndTime:        end,
				Status:         models.AppointmentStatusPending,
				Note:           req.Note,
				PriceAtBooking: service.Price,
				Reference:      reference,
			}
			if err := tx.Create(appointment).Error; err != nil {
				return fmt.Errorf("create appointment: %w", err)
			}
			return nil
		}
		return ErrSlotConflict
	})
	if txErr != nil {
		return nil, txErr
	}
	return appointment, nil
}

// lockForUpdate takes a row lock on the queried record. SQLite has no FOR
// UPDATE syntax and serializes writing transactions on its own, so the
// clause is only added on dialects that support it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// slotStillOpen re-validates, with live data, that the worker is open at the
// requested slot and that no occupying appointment overlaps it.
func slotStillOpen(tx *gorm.DB, workerID uuid.UUID, day, start, end time.Time, durationMinutes, stepMinutes int) (bool, error) {
	window, err := ResolveWorkingWindow(tx, workerID, day)
	if err != nil {
		return false, err
	}
	if window == nil {
		return false, nil
	}

	// The requested start must be one the generator would actually emit, not
	// merely fall inside the window.
	emitted := false
	for _, slot := range GenerateSlots(*window, durationMinutes, stepMinutes) {
		if slot.Equal(start) {
			emitted = true
			break
		}
	}
	if !emitted {
		return false, nil
	}

	var overlapping int64
	err = tx.Model(&models.Appointment{}).
		Where("worker_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			workerID, models.OccupyingStatuses, end, start).
		Count(&overlapping).Error
	if err != nil {
		return false, fmt.Errorf("count conflicts: %w", err)
	}
	return overlapping == 0, nil
}

// ReassignAppointmentWorker moves a pending or confirmed appointment to a
// different worker, re-checking qualification and conflicts under the same
// locking discipline as booking.
func ReassignAppointmentWorker(db *gorm.DB, appointmentID, newWorkerID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			return err
		}

		candidates, err := QualifiedWorkers(tx, appointment.VendorID, appointment.ServiceID)
		if err != nil {
			return err
		}
		qualified := false
		for _, candidate := range candidates {
			if candidate.ID == newWorkerID {
				qualified = true
				break
			}
		}
		if !qualified {
			return ErrWorkerNotQualified
		}

		var worker models.Worker
		if err := lockForUpdate(tx).First(&worker, "id = ?", newWorkerID).Error; err != nil {
			return fmt.Errorf("lock worker: %w", err)
		}

		var overlapping int64
		err = tx.Model(&models.Appointment{}).
			Where("worker_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				newWorkerID, appointment.ID, models.OccupyingStatuses, appointment.EndTime, appointment.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("count conflicts: %w", err)
		}
		if overlapping > 0 {
			return ErrSlotConflict
		}

		appointment.WorkerID = newWorkerID
		return tx.Save(&appointment).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &appointment, nil
}

// AdjustAppointmentDuration stretches or shrinks an appointment's end time.
// The new end may sit off the slot grid, but a stretched interval must not
// collide with the worker's other pending or confirmed appointments.
func AdjustAppointmentDuration(db *gorm.DB, appointmentID uuid.UUID, durationMinutes int) (*models.Appointment, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	var appointment models.Appointment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			return err
		}
		newEnd := appointment.StartTime.Add(time.Duration(durationMinutes) * time.Minute)

		occupying := false
		for _, status := range models.OccupyingStatuses {
			if appointment.Status == status {
				occupying = true
				break
			}
		}
		if occupying {
			var worker models.Worker
			if err := lockForUpdate(tx).First(&worker, "id = ?", appointment.WorkerID).Error; err != nil {
				return fmt.Errorf("lock worker: %w", err)
			}

			var overlapping int64
			err := tx.Model(&models.Appointment{}).
				Where("worker_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
					appointment.WorkerID, appointment.ID, models.OccupyingStatuses, newEnd, appointment.StartTime).
				Count(&overlapping).Error
			if err != nil {
				return fmt.Errorf("count conflicts: %w", err)
			}
			if overlapping > 0 {
				return ErrSlotConflict
			}
		}

		appointment.EndTime = newEnd
		return tx.Save(&appointment).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &appointment, nil
}

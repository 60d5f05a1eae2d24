package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SlotOption struct {
	Time             string         `json:"time"`
	AvailableWorkers []WorkerOption `json:"available_workers"`
}

type AvailabilityResult struct {
	Date  string       `json:"date"`
	Slots []SlotOption `json:"slots"`
	// Reason explains an empty slot list in human-readable terms.
	Reason string `json:"reason,omitempty"`
}

// QualifiedWorkers returns the vendor's active workers qualified for the
// service, in creation order. The order is stable so that repeated queries
// against unchanged data pick the same worker.
func QualifiedWorkers(db *gorm.DB, vendorID, serviceID uuid.UUID) ([]models.Worker, error) {
	var workers []models.Worker
	err := db.
		Joins("JOIN worker_services ON worker_services.worker_id = workers.id").
		Where("workers.vendor_id = ? AND worker_services.service_id = ? AND workers.is_active = ?", vendorID, serviceID, true).
		Order("workers.created_at asc, workers.id asc").
		Find(&workers).Error
	if err != nil {
		return nil, fmt.Errorf("load qualified workers: %w", err)
	}
	return workers, nil
}

// OccupyingAppointments loads the appointments that block a worker's time on
// the given date (pending and confirmed only).
func OccupyingAppointments(db *gorm.DB, workerID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	day := DateOnly(date)
	dayEnd := day.AddDate(0, 0, 1)

	var appts []models.Appointment
	err := db.
		Where("worker_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			workerID, models.OccupyingStatuses, dayEnd, day).
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	return appts, nil
}

// GetAvailability computes the bookable start times for (vendor, service,
// date), each annotated with the workers free at that time. When
// preferredWorkerID is set, slots where that worker is not free are dropped
// entirely rather than reordered.
//
// The query runs without locking; staleness is acceptable because
// BookAppointment re-validates inside its transaction.
func GetAvailability(db *gorm.DB, vendorID, serviceID uuid.UUID, date time.Time, preferredWorkerID *uuid.UUID) (*AvailabilityResult, error) {
	day := DateOnly(date)
	result := &AvailabilityResult{Date: day.Format("2006-01-02")}

	if !day.After(DateOnly(time.Now())) {
		return nil, ErrSameDayBooking
	}

	var vendor models.Vendor
	if err := db.Where("id = ? AND status = ?", vendorID, "active").First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("load vendor: %w", err)
	}

	var service models.Service
	if err := db.Where("id = ? AND vendor_id = ? AND is_active = ?", serviceID, vendorID, true).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("load service: %w", err)
	}
	if service.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	workers, err := QualifiedWorkers(db, vendorID, serviceID)
	if err != nil {
		return nil, err
	}

	if preferredWorkerID != nil {
		var pinned *models.Worker
		for i := range workers {
			if workers[i].ID == *preferredWorkerID {
				pinned = &workers[i]
				break
			}
		}
		if pinned == nil {
			var exists models.Worker
			if err := db.Where("id = ? AND vendor_id = ?", *preferredWorkerID, vendorID).First(&exists).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrWorkerNotFound
				}
				return nil, fmt.Errorf("load worker: %w", err)
			}
			return nil, ErrWorkerNotQualified
		}
		workers = []models.Worker{*pinned}
	}

	if len(workers) == 0 {
		result.Reason = "no qualified worker available"
		return result, nil
	}

	// Per-slot worker sets, keyed by start time. Worker order inside a slot
	// follows the deterministic candidate order.
	slotWorkers := make(map[time.Time][]WorkerOption)
	openWorkers := 0

	for _, worker := range workers {
		window, err := ResolveWorkingWindow(db, worker.ID, day)
		if err != nil {
			return nil, err
		}
		if window == nil {
			continue
		}
		openWorkers++

		slots := GenerateSlots(*window, service.DurationMinutes, vendor.SlotStepMinutes)
		if len(slots) == 0 {
			continue
		}

		busy, err := OccupyingAppointments(db, worker.ID, day)
		if err != nil {
			return nil, err
		}

		for _, slot := range FilterConflicting(slots, service.DurationMinutes, busy) {
			slotWorkers[slot] = append(slotWorkers[slot], WorkerOption{ID: worker.ID, Name: worker.Name})
		}
	}

	if len(slotWorkers) == 0 {
		if openWorkers == 0 {
			result.Reason = "worker unavailable that date"
		} else {
			result.Reason = "no free slots remaining that date"
		}
		return result, nil
	}

	starts := make([]time.Time, 0, len(slotWorkers))
	for slot := range slotWorkers {
		starts = append(starts, slot)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	for _, slot := range starts {
		result.Slots = append(result.Slots, SlotOption{
			Time:             slot.Format("15:04"),
			AvailableWorkers: slotWorkers[slot],
		})
	}
	return result, nil
}

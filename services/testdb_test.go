package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/bookedly/bookedly_backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory SQLite database with a schema matching the
// GORM models (sqlite-friendly, ids assigned by the tests).
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			phone TEXT,
			profile_picture_url TEXT,
			reset_password_token TEXT,
			reset_password_token_expires_at DATETIME,
			is_active NUMERIC DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE vendors (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			address TEXT,
			phone TEXT,
			logo_url TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			opens_at TEXT,
			closes_at TEXT,
			slot_step_minutes INTEGER NOT NULL DEFAULT 30,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE services (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			duration_minutes INTEGER NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			is_active NUMERIC NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE workers (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL,
			name TEXT NOT NULL,
			title TEXT,
			photo_url TEXT,
			is_active NUMERIC NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE worker_services (
			worker_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			PRIMARY KEY (worker_id, service_id)
		);`,
		`CREATE TABLE weekly_availabilities (
			id TEXT PRIMARY KEY,
			worker_id TEXT NOT NULL,
			day_of_week INTEGER NOT NULL,
			start_time TEXT,
			end_time TEXT,
			is_available NUMERIC NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (worker_id, day_of_week)
		);`,
		`CREATE TABLE schedule_overrides (
			id TEXT PRIMARY KEY,
			worker_id TEXT NOT NULL,
			date DATETIME NOT NULL,
			is_day_off NUMERIC NOT NULL DEFAULT 0,
			start_time TEXT,
			end_time TEXT,
			reason TEXT,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (worker_id, date)
		);`,
		`CREATE TABLE appointments (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			worker_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			note TEXT,
			price_at_booking NUMERIC NOT NULL DEFAULT 0,
			reference TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error, "create schema")
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		FullName: "Test Customer",
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Password: "x",
		Role:     "customer",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedVendor(t *testing.T, db *gorm.DB, stepMinutes int) models.Vendor {
	t.Helper()
	owner := seedUser(t, db)
	vendor := models.Vendor{
		ID:              uuid.New(),
		OwnerID:         owner.ID,
		Name:            "Test Vendor",
		Status:          "active",
		SlotStepMinutes: stepMinutes,
	}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func seedService(t *testing.T, db *gorm.DB, vendorID uuid.UUID, durationMinutes int) models.Service {
	t.Helper()
	service := models.Service{
		ID:              uuid.New(),
		VendorID:        vendorID,
		Name:            "Test Service",
		DurationMinutes: durationMinutes,
		Price:           25.00,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&service).Error)
	return service
}

var workerSeq int

// seedWorker assigns strictly increasing creation times so that the
// deterministic assignment order is stable in tests.
func seedWorker(t *testing.T, db *gorm.DB, vendorID uuid.UUID, name string) models.Worker {
	t.Helper()
	workerSeq++
	worker := models.Worker{
		ID:        uuid.New(),
		VendorID:  vendorID,
		Name:      name,
		IsActive:  true,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(workerSeq) * time.Minute),
	}
	require.NoError(t, db.Create(&worker).Error)
	return worker
}

func qualifyWorker(t *testing.T, db *gorm.DB, workerID, serviceID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&models.WorkerService{WorkerID: workerID, ServiceID: serviceID}).Error)
}

func seedWeekly(t *testing.T, db *gorm.DB, workerID uuid.UUID, dayOfWeek int, startClock, endClock string) {
	t.Helper()
	row := models.WeeklyAvailability{
		ID:          uuid.New(),
		WorkerID:    workerID,
		DayOfWeek:   dayOfWeek,
		StartTime:   startClock,
		EndTime:     endClock,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&row).Error)
}

func seedDayOff(t *testing.T, db *gorm.DB, workerID uuid.UUID, date time.Time) {
	t.Helper()
	override := models.ScheduleOverride{
		ID:       uuid.New(),
		WorkerID: workerID,
		Date:     DateOnly(date),
		IsDayOff: true,
	}
	require.NoError(t, db.Create(&override).Error)
}

func seedAppointment(t *testing.T, db *gorm.DB, vendor models.Vendor, service models.Service, workerID, userID uuid.UUID, start, end time.Time, status string) models.Appointment {
	t.Helper()
	appointment := models.Appointment{
		ID:        uuid.New(),
		VendorID:  vendor.ID,
		ServiceID: service.ID,
		WorkerID:  workerID,
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		Reference: uuid.NewString()[:8],
	}
	require.NoError(t, db.Create(&appointment).Error)
	return appointment
}

// nextWeekday returns the first future date (at least tomorrow) that falls
// on the given weekday, keeping the same-day booking policy satisfied.
func nextWeekday(weekday time.Weekday) time.Time {
	day := DateOnly(time.Now()).AddDate(0, 0, 1)
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

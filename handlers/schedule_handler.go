package handlers

import (
	"errors"
	"time"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/bookedly/bookedly_backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// workerForMyVendor resolves a :workerId path parameter against the
// authenticated vendor's staff.
func workerForMyVendor(c *fiber.Ctx) (*models.Worker, error) {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return nil, err
	}
	var worker models.Worker
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("workerId"), vendor.ID).First(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

func clockRangeValid(startClock, endClock string) bool {
	startHour, startMinute, err := services.ParseClock(startClock)
	if err != nil {
		return false
	}
	endHour, endMinute, err := services.ParseClock(endClock)
	if err != nil {
		return false
	}
	return endHour*60+endMinute > startHour*60+startMinute
}

type UpsertWeeklyAvailabilityRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// UpsertWeeklyAvailability creates or replaces the one weekly row a worker
// has per weekday.
func UpsertWeeklyAvailability(c *fiber.Ctx) error {
	worker, err := workerForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var req UpsertWeeklyAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.IsAvailable && !clockRangeValid(req.StartTime, req.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be before end_time, both HH:MM"})
	}

	var row models.WeeklyAvailability
	err = database.DB.Where("worker_id = ? AND day_of_week = ?", worker.ID, req.DayOfWeek).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.WeeklyAvailability{WorkerID: worker.ID, DayOfWeek: req.DayOfWeek}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	row.StartTime = req.StartTime
	row.EndTime = req.EndTime
	row.IsAvailable = req.IsAvailable

	if err := database.DB.Save(&row).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save weekly availability"})
	}
	return c.JSON(row)
}

func GetWorkerSchedule(c *fiber.Ctx) error {
	worker, err := workerForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var weekly []models.WeeklyAvailability
	database.DB.Where("worker_id = ?", worker.ID).Order("day_of_week asc").Find(&weekly)

	var overrides []models.ScheduleOverride
	database.DB.Where("worker_id = ? AND date >= ?", worker.ID, services.DateOnly(time.Now())).Order("date asc").Find(&overrides)

	return c.JSON(fiber.Map{"weekly": weekly, "overrides": overrides})
}

type CreateScheduleOverrideRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	IsDayOff  bool    `json:"is_day_off"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Reason    *string `json:"reason"`
}

// CreateScheduleOverride sets the worker's schedule for one specific date.
// The override fully replaces the weekly pattern for that date; a working
// override needs an explicit window, a day off needs none.
func CreateScheduleOverride(c *fiber.Ctx) error {
	worker, err := workerForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var req CreateScheduleOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	if !req.IsDayOff {
		if req.StartTime == nil || req.EndTime == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A working override requires start_time and end_time"})
		}
		if !clockRangeValid(*req.StartTime, *req.EndTime) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be before end_time, both HH:MM"})
		}
	}

	var override models.ScheduleOverride
	err = database.DB.Where("worker_id = ? AND date = ?", worker.ID, date).First(&override).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		override = models.ScheduleOverride{WorkerID: worker.ID, Date: date}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	override.IsDayOff = req.IsDayOff
	override.Reason = req.Reason
	if req.IsDayOff {
		override.StartTime = nil
		override.EndTime = nil
	} else {
		override.StartTime = req.StartTime
		override.EndTime = req.EndTime
	}

	if err := database.DB.Save(&override).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save override"})
	}
	return c.Status(fiber.StatusCreated).JSON(override)
}

func DeleteScheduleOverride(c *fiber.Ctx) error {
	worker, err := workerForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	result := database.DB.Where("id = ? AND worker_id = ?", c.Params("overrideId"), worker.ID).Delete(&models.ScheduleOverride{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Override not found"})
	}
	return c.JSON(fiber.Map{"message": "Override removed"})
}

package handlers

import (
	"time"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetVendorAvailability lists the bookable start times for a vendor, service
// and date, each with the workers free at that time.
//
// GET /api/v1/vendors/:vendorId/availability?service_id=...&date=YYYY-MM-DD[&worker_id=...]
func GetVendorAvailability(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("vendorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor id"})
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "service_id is required and must be a UUID"})
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidDate.Error()})
	}

	var preferredWorker *uuid.UUID
	if raw := c.Query("worker_id"); raw != "" {
		workerID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "worker_id must be a UUID"})
		}
		preferredWorker = &workerID
	}

	result, err := services.GetAvailability(database.DB, vendorID, serviceID, date, preferredWorker)
	if err != nil {
		return rejectWithReason(c, err)
	}
	return c.JSON(result)
}

// rejectWithReason maps engine rejections onto HTTP statuses.
func rejectWithReason(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case services.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case services.IsPolicyViolation(err):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case services.IsConflictError(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again"})
	}
}

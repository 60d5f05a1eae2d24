package handlers

import (
	"errors"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2"`
	Description     *string `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

func CreateService(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var req CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := models.Service{
		VendorID:        vendor.ID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func ListMyServices(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var services []models.Service
	database.DB.Preload("Workers").Where("vendor_id = ?", vendor.ID).Order("created_at asc").Find(&services)
	return c.JSON(services)
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	IsActive        *bool    `json:"is_active"`
}

func UpdateService(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var service models.Service
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("serviceId"), vendor.ID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	var req UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes must be positive"})
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}
	return c.JSON(service)
}

type QualificationRequest struct {
	WorkerID string `json:"worker_id" validate:"required,uuid"`
}

// QualifyWorker declares that a worker can perform a service. Only qualified
// workers are ever offered for a service's slots.
func QualifyWorker(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var req QualificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	workerID, _ := uuid.Parse(req.WorkerID)

	var service models.Service
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("serviceId"), vendor.ID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	var worker models.Worker
	if err := database.DB.Where("id = ? AND vendor_id = ?", workerID, vendor.ID).First(&worker).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var existing models.WorkerService
	err = database.DB.Where("worker_id = ? AND service_id = ?", worker.ID, service.ID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Worker is already qualified for this service"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	link := models.WorkerService{WorkerID: worker.ID, ServiceID: service.ID}
	if err := database.DB.Create(&link).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to qualify worker"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Worker qualified for service"})
}

func UnqualifyWorker(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var service models.Service
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("serviceId"), vendor.ID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	result := database.DB.Where("worker_id = ? AND service_id = ?", c.Params("workerId"), service.ID).Delete(&models.WorkerService{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Qualification not found"})
	}
	return c.JSON(fiber.Map{"message": "Qualification removed"})
}

package handlers

import (
	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/gofiber/fiber/v2"
)

type CreateWorkerRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Title    *string `json:"title"`
	PhotoURL *string `json:"photo_url"`
}

func CreateWorker(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var req CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	worker := models.Worker{
		VendorID: vendor.ID,
		Name:     req.Name,
		Title:    req.Title,
		PhotoURL: req.PhotoURL,
	}
	if err := database.DB.Create(&worker).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create worker"})
	}
	return c.Status(fiber.StatusCreated).JSON(worker)
}

func ListMyWorkers(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var workers []models.Worker
	database.DB.Preload("Services").Where("vendor_id = ?", vendor.ID).Order("created_at asc").Find(&workers)
	return c.JSON(workers)
}

type UpdateWorkerRequest struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	PhotoURL *string `json:"photo_url"`
	IsActive *bool   `json:"is_active"`
}

func UpdateWorker(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var worker models.Worker
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("workerId"), vendor.ID).First(&worker).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var req UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Title != nil {
		worker.Title = req.Title
	}
	if req.PhotoURL != nil {
		worker.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&worker).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update worker"})
	}
	return c.JSON(worker)
}

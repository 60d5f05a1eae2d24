package handlers

import (
	"errors"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

// vendorForOwner loads the vendor owned by the authenticated user. Vendor
// staff endpoints always operate on "my vendor", never on an id taken from
// the request.
func vendorForOwner(c *fiber.Ctx) (*models.Vendor, error) {
	var vendor models.Vendor
	err := database.DB.Where("owner_id = ?", currentUserID(c)).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func ListActiveVendors(c *fiber.Ctx) error {
	var vendors []models.Vendor
	if err := database.DB.Where("status = ?", "active").Order("name asc").Find(&vendors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(vendors)
}

func GetVendorDetail(c *fiber.Ctx) error {
	vendorID := c.Params("vendorId")

	var vendor models.Vendor
	err := database.DB.
		Preload("Services", "is_active = ?", true).
		Preload("Workers", "is_active = ?", true).
		Where("id = ? AND status = ?", vendorID, "active").
		First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(vendor)
}

type VendorApplicationRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

func ApplyToBeAVendor(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req VendorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Vendor
	err := database.DB.Where("owner_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	newVendor := models.Vendor{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	}

	if err := database.DB.Create(&newVendor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(newVendor)
}

func GetMyVendor(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	database.DB.Preload("Services").Preload("Workers").First(vendor, "id = ?", vendor.ID)
	return c.JSON(vendor)
}

type UpdateVendorRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	LogoURL         *string `json:"logo_url"`
	OpensAt         *string `json:"opens_at"`
	ClosesAt        *string `json:"closes_at"`
	SlotStepMinutes *int    `json:"slot_step_minutes"`
}

func UpdateMyVendor(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	var req UpdateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Description != nil {
		vendor.Description = req.Description
	}
	if req.Address != nil {
		vendor.Address = req.Address
	}
	if req.Phone != nil {
		vendor.Phone = req.Phone
	}
	if req.LogoURL != nil {
		vendor.LogoURL = req.LogoURL
	}
	if req.OpensAt != nil {
		vendor.OpensAt = req.OpensAt
	}
	if req.ClosesAt != nil {
		vendor.ClosesAt = req.ClosesAt
	}
	if req.SlotStepMinutes != nil {
		if *req.SlotStepMinutes <= 0 || *req.SlotStepMinutes > 240 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "slot_step_minutes must be between 1 and 240"})
		}
		vendor.SlotStepMinutes = *req.SlotStepMinutes
	}

	if err := database.DB.Save(vendor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}
	return c.JSON(vendor)
}

package handlers

import (
	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/bookedly/bookedly_backend/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListPendingVendors(c *fiber.Ctx) error {
	var pendingVendors []models.Vendor
	if err := database.DB.Preload("Owner").Where("status = ?", "pending").Find(&pendingVendors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingVendors)
}

type ManageVendorRequest struct {
	Status string `json:"status" validate:"required,oneof=active rejected suspended"`
}

// ManageVendorApplication moves a vendor between pending / active /
// rejected / suspended and promotes or demotes the owner's role with it.
func ManageVendorApplication(c *fiber.Ctx) error {
	var req ManageVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var vendor models.Vendor
	if err := database.DB.Preload("Owner").Where("id = ?", c.Params("vendorId")).First(&vendor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		vendor.Status = req.Status
		if err := tx.Save(&vendor).Error; err != nil {
			return err
		}

		ownerRole := "customer"
		if req.Status == "active" {
			ownerRole = "vendor"
		}
		return tx.Model(&models.User{}).Where("id = ?", vendor.OwnerID).Update("role", ownerRole).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}

	subject := "Your Vendor Application Was Reviewed"
	body := "<h1>Application Update</h1><p>Your vendor application status is now: " + req.Status + ".</p>"
	go notifications.SendEmail(vendor.Owner.FullName, vendor.Owner.Email, subject, body)

	return c.JSON(vendor)
}

func ListAllVendors(c *fiber.Ctx) error {
	var vendors []models.Vendor
	query := database.DB.Preload("Owner")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&vendors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(vendors)
}

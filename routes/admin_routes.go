package routes

import (
	"github.com/bookedly/bookedly_backend/handlers"
	"github.com/bookedly/bookedly_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/vendors", handlers.ListAllVendors)
	admin.Get("/vendors/pending", handlers.ListPendingVendors)
	admin.Post("/vendors/:vendorId/manage", handlers.ManageVendorApplication)
}

package routes

import (
	"github.com/bookedly/bookedly_backend/handlers"
	"github.com/bookedly/bookedly_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func VendorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/vendors", handlers.ListActiveVendors)
	api.Get("/vendors/:vendorId", handlers.GetVendorDetail)
	api.Get("/vendors/:vendorId/availability", handlers.GetVendorAvailability)

	vendor := api.Group("/vendor", middleware.Protected())
	vendor.Post("/apply", handlers.ApplyToBeAVendor)

	managed := vendor.Group("", middleware.VendorRequired())
	managed.Get("/me", handlers.GetMyVendor)
	managed.Put("/me", handlers.UpdateMyVendor)

	services := managed.Group("/services")
	services.Post("", handlers.CreateService)
	services.Get("", handlers.ListMyServices)
	services.Put("/:serviceId", handlers.UpdateService)
	services.Post("/:serviceId/workers", handlers.QualifyWorker)
	services.Delete("/:serviceId/workers/:workerId", handlers.UnqualifyWorker)

	workers := managed.Group("/workers")
	workers.Post("", handlers.CreateWorker)
	workers.Get("", handlers.ListMyWorkers)
	workers.Put("/:workerId", handlers.UpdateWorker)
	workers.Get("/:workerId/schedule", handlers.GetWorkerSchedule)
	workers.Put("/:workerId/schedule/weekly", handlers.UpsertWeeklyAvailability)
	workers.Post("/:workerId/schedule/overrides", handlers.CreateScheduleOverride)
	workers.Delete("/:workerId/schedule/overrides/:overrideId", handlers.DeleteScheduleOverride)
}

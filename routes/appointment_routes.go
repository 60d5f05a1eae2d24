package routes

import (
	"github.com/bookedly/bookedly_backend/handlers"
	"github.com/bookedly/bookedly_backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Post("", handlers.CreateAppointment)
	appointments.Get("/me", handlers.GetMyAppointments)
	appointments.Post("/:appointmentId/cancel", handlers.CancelMyAppointment)

	vendorAppointments := api.Group("/vendor/appointments", middleware.Protected(), middleware.VendorRequired())
	vendorAppointments.Get("", handlers.ListVendorAppointments)
	vendorAppointments.Post("/:appointmentId/confirm", handlers.ConfirmAppointment)
	vendorAppointments.Post("/:appointmentId/reject", handlers.RejectAppointment)
	vendorAppointments.Post("/:appointmentId/cancel", handlers.CancelAppointmentByVendor)
	vendorAppointments.Post("/:appointmentId/complete", handlers.CompleteAppointment)
	vendorAppointments.Post("/:appointmentId/no-show", handlers.MarkNoShow)
	vendorAppointments.Post("/:appointmentId/reassign", handlers.ReassignAppointment)
	vendorAppointments.Post("/:appointmentId/duration", handlers.AdjustAppointmentDuration)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeVendorWs))
}

package handlers

import (
	"fmt"
	"time"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/bookedly/bookedly_backend/notifications"
	"github.com/bookedly/bookedly_backend/services"
	"github.com/bookedly/bookedly_backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	VendorID  string  `json:"vendor_id" validate:"required,uuid"`
	ServiceID string  `json:"service_id" validate:"required,uuid"`
	WorkerID  *string `json:"worker_id,omitempty" validate:"omitempty,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string  `json:"time" validate:"required"`
	Note      *string `json:"note,omitempty"`
}

func CreateAppointment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vendorID, _ := uuid.Parse(req.VendorID)
	serviceID, _ := uuid.Parse(req.ServiceID)
	date, _ := time.Parse("2006-01-02", req.Date)

	var workerID *uuid.UUID
	if req.WorkerID != nil {
		id, _ := uuid.Parse(*req.WorkerID)
		workerID = &id
	}

	appointment, err := services.BookAppointment(database.DB, services.BookingRequest{
		VendorID:  vendorID,
		ServiceID: serviceID,
		WorkerID:  workerID,
		Date:      date,
		SlotTime:  req.Time,
		UserID:    userID,
		Note:      req.Note,
	})
	if err != nil {
		return rejectWithReason(c, err)
	}

	go notifyAppointmentEvent("appointment_created", appointment.ID,
		"Your Booking Request Was Received",
		"<h1>Booking Received</h1><p>Your appointment request for %s on %s at %s is awaiting the vendor's confirmation.</p>")

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// notifyAppointmentEvent sends the customer email and pushes a websocket
// event to the vendor's dashboard. Fire and forget; booking never waits on
// delivery.
func notifyAppointmentEvent(eventType string, appointmentID uuid.UUID, subject, bodyTemplate string) {
	var appointment models.Appointment
	err := database.DB.
		Preload("User").
		Preload("Service").
		Preload("Vendor.Owner").
		First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		return
	}

	body := fmt.Sprintf(bodyTemplate,
		appointment.Service.Name,
		appointment.StartTime.Format("2006-01-02"),
		appointment.StartTime.Format("15:04"),
	)
	go notifications.SendEmail(appointment.User.FullName, appointment.User.Email, subject, body)

	websocket.Broadcast <- &websocket.AppointmentEvent{Type: eventType, Appointment: appointment}
}

func GetMyAppointments(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var appointments []models.Appointment
	database.DB.
		Preload("Vendor").
		Preload("Service").
		Preload("Worker").
		Where("user_id = ?", userID).
		Order("start_time desc").
		Find(&appointments)

	return c.JSON(appointments)
}

func CancelMyAppointment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", c.Params("appointmentId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if appointment.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your appointment"})
	}
	if appointment.Status != models.AppointmentStatusPending && appointment.Status != models.AppointmentStatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending or confirmed appointments can be cancelled"})
	}
	if appointment.StartTime.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot cancel an appointment that has already started"})
	}

	appointment.Status = models.AppointmentStatusCancelledByUser
	if err := database.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel appointment"})
	}

	go notifyAppointmentEvent("appointment_cancelled", appointment.ID,
		"Your Appointment Was Cancelled",
		"<h1>Appointment Cancelled</h1><p>Your appointment for %s on %s at %s has been cancelled.</p>")

	return c.JSON(fiber.Map{"message": "Appointment cancelled"})
}

func ListVendorAppointments(c *fiber.Ctx) error {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor profile not found"})
	}

	query := database.DB.
		Preload("User").
		Preload("Service").
		Preload("Worker").
		Where("vendor_id = ?", vendor.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidDate.Error()})
		}
		day := services.DateOnly(date)
		query = query.Where("start_time >= ? AND start_time < ?", day, day.AddDate(0, 0, 1))
	}

	var appointments []models.Appointment
	query.Order("start_time asc").Find(&appointments)
	return c.JSON(appointments)
}

// appointmentForMyVendor resolves an :appointmentId path parameter against
// the authenticated vendor's book.
func appointmentForMyVendor(c *fiber.Ctx) (*models.Appointment, error) {
	vendor, err := vendorForOwner(c)
	if err != nil {
		return nil, err
	}
	var appointment models.Appointment
	if err := database.DB.Where("id = ? AND vendor_id = ?", c.Params("appointmentId"), vendor.ID).First(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func transitionAppointment(c *fiber.Ctx, from []string, to, eventType, subject, bodyTemplate string) error {
	appointment, err := appointmentForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	allowed := false
	for _, status := range from {
		if appointment.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Appointment cannot move from %s to %s", appointment.Status, to)})
	}

	appointment.Status = to
	if err := database.DB.Save(appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update appointment"})
	}

	go notifyAppointmentEvent(eventType, appointment.ID, subject, bodyTemplate)
	return c.JSON(appointment)
}

func ConfirmAppointment(c *fiber.Ctx) error {
	return transitionAppointment(c,
		[]string{models.AppointmentStatusPending},
		models.AppointmentStatusConfirmed,
		"appointment_confirmed",
		"Your Appointment Is Confirmed!",
		"<h1>Appointment Confirmed</h1><p>Your appointment for %s on %s at %s has been confirmed. See you then!</p>")
}

func RejectAppointment(c *fiber.Ctx) error {
	return transitionAppointment(c,
		[]string{models.AppointmentStatusPending},
		models.AppointmentStatusRejected,
		"appointment_rejected",
		"Your Appointment Request Was Declined",
		"<h1>Appointment Declined</h1><p>Unfortunately your appointment request for %s on %s at %s could not be accommodated. Please pick another time.</p>")
}

func CancelAppointmentByVendor(c *fiber.Ctx) error {
	return transitionAppointment(c,
		[]string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed},
		models.AppointmentStatusCancelledByVendor,
		"appointment_cancelled",
		"Your Appointment Was Cancelled",
		"<h1>Appointment Cancelled</h1><p>We are sorry, your appointment for %s on %s at %s was cancelled by the vendor.</p>")
}

func CompleteAppointment(c *fiber.Ctx) error {
	return transitionAppointment(c,
		[]string{models.AppointmentStatusConfirmed},
		models.AppointmentStatusCompleted,
		"appointment_completed",
		"Thanks for Your Visit!",
		"<h1>Visit Complete</h1><p>Thanks for visiting! Your appointment for %s on %s at %s is now complete.</p>")
}

func MarkNoShow(c *fiber.Ctx) error {
	return transitionAppointment(c,
		[]string{models.AppointmentStatusConfirmed},
		models.AppointmentStatusNoShow,
		"appointment_no_show",
		"We Missed You",
		"<h1>Missed Appointment</h1><p>You missed your appointment for %s on %s at %s. Contact the vendor to rebook.</p>")
}

type ReassignAppointmentRequest struct {
	WorkerID string `json:"worker_id" validate:"required,uuid"`
}

func ReassignAppointment(c *fiber.Ctx) error {
	appointment, err := appointmentForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	var req ReassignAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	newWorkerID, _ := uuid.Parse(req.WorkerID)

	updated, err := services.ReassignAppointmentWorker(database.DB, appointment.ID, newWorkerID)
	if err != nil {
		return rejectWithReason(c, err)
	}
	return c.JSON(updated)
}

type AdjustDurationRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,gt=0"`
}

// AdjustAppointmentDuration lets staff stretch or shrink an appointment.
// The new end may land off the slot grid, but it is still re-checked for
// conflicts so the worker's schedule stays overlap-free.
func AdjustAppointmentDuration(c *fiber.Ctx) error {
	appointment, err := appointmentForMyVendor(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}

	var req AdjustDurationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := services.AdjustAppointmentDuration(database.DB, appointment.ID, req.DurationMinutes)
	if err != nil {
		return rejectWithReason(c, err)
	}
	return c.JSON(updated)
}

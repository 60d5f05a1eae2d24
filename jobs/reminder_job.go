package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
	"github.com/bookedly/bookedly_backend/notifications"
)

func SendAppointmentReminders() {
	log.Println("Running job: SendAppointmentReminders...")

	now := time.Now()
	lowerBound := now.Add(24 * time.Hour)
	upperBound := now.Add(25 * time.Hour)

	var upcoming []models.Appointment

	err := database.DB.
		Preload("User").
		Preload("Vendor").
		Preload("Service").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.AppointmentStatusConfirmed, lowerBound, upperBound).
		Find(&upcoming).Error

	if err != nil {
		log.Printf("Error checking for upcoming appointments: %v", err)
		return
	}

	if len(upcoming) == 0 {
		return
	}

	for _, appointment := range upcoming {
		log.Printf("Sending reminder for appointment ID: %s", appointment.ID)

		emailSubject := "Reminder: Your Appointment Is Tomorrow"
		emailBody := fmt.Sprintf(
			"<h1>Appointment Reminder</h1><p>Hi there,</p><p>This is a friendly reminder of your %s appointment at %s tomorrow at %s.</p>",
			appointment.Service.Name,
			appointment.Vendor.Name,
			appointment.StartTime.Format("15:04"),
		)

		go notifications.SendEmail(appointment.User.FullName, appointment.User.Email, emailSubject, emailBody)
	}
}

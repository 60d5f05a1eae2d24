package jobs

import (
	"log"
	"time"

	"github.com/bookedly/bookedly_backend/database"
	"github.com/bookedly/bookedly_backend/models"
)

// ExpireUnconfirmedAppointments rejects pending appointments whose start
// time has passed without the vendor ever confirming them, so they stop
// occupying worker time.
func ExpireUnconfirmedAppointments() {
	log.Println("Running job: ExpireUnconfirmedAppointments...")

	var expired []models.Appointment

	err := database.DB.
		Where("status = ? AND start_time < ?", models.AppointmentStatusPending, time.Now()).
		Find(&expired).Error

	if err != nil {
		log.Printf("Error checking for expired appointments: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	for _, appointment := range expired {
		appointment.Status = models.AppointmentStatusRejected
		database.DB.Save(&appointment)
	}

	log.Printf("Expired %d unconfirmed appointment(s).", len(expired))
}

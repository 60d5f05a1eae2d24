package models

import (
	"time"
	"github.com/google/uuid"
)

const (
	AppointmentStatusPending           = "pending"
	AppointmentStatusConfirmed         = "confirmed"
	AppointmentStatusCancelledByUser   = "cancelled_by_user"
	AppointmentStatusCancelledByVendor = "cancelled_by_vendor"
	AppointmentStatusRejected          = "rejected"
	AppointmentStatusCompleted         = "completed"
	AppointmentStatusNoShow            = "no_show"
)

// OccupyingStatuses are the statuses that count against a worker's time for
// conflict purposes.
var OccupyingStatuses = []string{AppointmentStatusPending, AppointmentStatusConfirmed}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string  `gorm:"size:32;not null;default:'pending'" json:"status"`
	Note   *string `gorm:"type:text" json:"note"`

	PriceAtBooking float64 `gorm:"type:numeric(10,2);not null" json:"price_at_booking"`
	Reference      string  `gorm:"size:10;unique" json:"reference"`

	Vendor  Vendor  `gorm:"foreignkey:VendorID" json:"vendor,omitempty"`
	Service Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`
	Worker  Worker  `gorm:"foreignkey:WorkerID" json:"worker,omitempty"`
	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

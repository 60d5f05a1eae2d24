package models

import (
	"time"
	"github.com/google/uuid"
)

// WeeklyAvailability is a worker's recurring working window for one weekday.
// Times are vendor-local "HH:MM" clock strings, [start, end).
type WeeklyAvailability struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_worker_weekday" json:"-"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_worker_weekday" json:"day_of_week"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`

	Worker Worker `gorm:"foreignkey:WorkerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

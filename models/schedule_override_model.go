package models

import (
	"time"
	"github.com/google/uuid"
)

// ScheduleOverride replaces a worker's weekly pattern for one calendar date.
// Either the whole day is off, or the explicit window is used verbatim; the
// weekly row for that weekday is never consulted when an override exists.
type ScheduleOverride struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	WorkerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_worker_date" json:"-"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_worker_date" json:"date"`

	IsDayOff  bool    `gorm:"not null;default:false" json:"is_day_off"`
	StartTime *string `gorm:"size:5" json:"start_time"`
	EndTime   *string `gorm:"size:5" json:"end_time"`
	Reason    *string `gorm:"size:255" json:"reason"`

	Worker Worker `gorm:"foreignkey:WorkerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

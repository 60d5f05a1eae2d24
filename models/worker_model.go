package models

import (
	"time"
	"github.com/google/uuid"
)

type Worker struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VendorID uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Title    *string   `gorm:"size:255" json:"title"`
	PhotoURL *string   `gorm:"size:255" json:"photo_url"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	Services []*Service `gorm:"many2many:worker_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkerService struct {
	WorkerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Worker  Worker  `gorm:"foreignKey:WorkerID"`
	Service Service `gorm:"foreignKey:ServiceID"`
}

package models

import (
	"time"
	"github.com/google/uuid"
)

type Vendor struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Address     *string   `gorm:"size:255" json:"address"`
	Phone       *string   `gorm:"size:32" json:"phone"`
	LogoURL     *string   `gorm:"size:255" json:"logo_url"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	// Informational only; worker schedules are authoritative for bookability.
	OpensAt  *string `gorm:"size:5" json:"opens_at"`
	ClosesAt *string `gorm:"size:5" json:"closes_at"`

	// Granularity of generated booking slots, in minutes.
	SlotStepMinutes int `gorm:"not null;default:30" json:"slot_step_minutes"`

	Owner    User      `gorm:"foreignkey:OwnerID" json:"owner,omitempty"`
	Services []Service `gorm:"foreignKey:VendorID" json:"services,omitempty"`
	Workers  []Worker  `gorm:"foreignKey:VendorID" json:"workers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

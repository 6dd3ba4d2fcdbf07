package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Profile is a user account. The stored role governs permissions; see
// enum.Role.Permissions.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Role      enum.Role `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// Permissions returns the permission names granted by the profile's role.
func (p *Profile) Permissions() []string {
	return p.Role.Permissions()
}

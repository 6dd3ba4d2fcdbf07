package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceProvider is a vendor offering services, identified by a unique
// vendor number. Only active providers are selectable on new receipts.
type ServiceProvider struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName       string                      `gorm:"size:255;not null" json:"company_name"`
	ContactName       *string                     `gorm:"size:255" json:"contact_name,omitempty"`
	Email             string                      `gorm:"size:255;not null" json:"email"`
	Phone             *string                     `gorm:"size:50" json:"phone,omitempty"`
	VendorNumber      string                      `gorm:"size:100;uniqueIndex;not null" json:"vendor_number"`
	ServiceCategories datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"service_categories"`
	Status            enum.ProviderStatus         `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`

	// Relationships
	Services []Service `gorm:"foreignKey:ProviderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new provider
func (p *ServiceProvider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceProvider model
func (ServiceProvider) TableName() string {
	return "service_providers"
}

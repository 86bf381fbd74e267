package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessAccount represents an organisation acting on the platform.
// Businesses comment, like and post like users do, but have no username handle.
type BusinessAccount struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName       string    `gorm:"size:255;not null" json:"company_name"`
	ContactPersonName string    `gorm:"size:255;not null" json:"contact_person_name"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	Address           string    `gorm:"size:512;not null" json:"address"`
	GSTNumber         string    `gorm:"size:64" json:"gst_number,omitempty"`
	Website           string    `gorm:"size:512" json:"website,omitempty"`
	Phone             string    `gorm:"size:20" json:"phone,omitempty"`
	LogoURL           string    `gorm:"size:512" json:"logo_url,omitempty"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	Industry          string    `gorm:"size:255" json:"industry,omitempty"`
	Size              string    `gorm:"size:64" json:"size,omitempty"`
	IsVerified        bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (b *BusinessAccount) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

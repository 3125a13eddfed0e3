package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Farmer is the legacy demographic profile kept from the first version of the
// system. It is a separate entity from Inquiry: the two shapes were never
// merged upstream, so they stay distinct here. The legacy role and spelling
// values are preserved for compatibility with existing records.
type Farmer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName     string    `gorm:"size:100;not null" json:"firstName"`
	LastName      string    `gorm:"size:100;not null" json:"lastName"`
	Email         string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Role          string    `gorm:"size:50;not null" json:"role"` // farmer | home gardner | agriculutre officer
	Gender        string    `gorm:"size:10;not null" json:"gender"`
	DOB           time.Time `gorm:"not null" json:"dob"`
	Address       string    `gorm:"size:255;not null" json:"address"`
	ContactNumber string    `gorm:"size:10;not null" json:"contactNumber"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

var FarmerProfileRoles = []string{"farmer", "home gardner", "agriculutre officer"}

func IsValidFarmerProfileRole(role string) bool {
	for _, r := range FarmerProfileRoles {
		if role == r {
			return true
		}
	}
	return false
}

func (f *Farmer) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

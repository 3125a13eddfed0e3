package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryPending    InquiryStatus = "pending"
	InquiryInProgress InquiryStatus = "in-progress"
	InquiryResolved   InquiryStatus = "resolved"
)

// Inquiry is a plant-issue submission owned by the user who created it.
// Only the owner and staff (admin/officer) may read or mutate it.
type Inquiry struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID     `gorm:"type:uuid;not null;index" json:"userId"`
	User             User          `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Fullname         string        `gorm:"size:150;not null" json:"fullname"`
	Email            string        `gorm:"size:150;not null" json:"email"`
	Location         string        `gorm:"size:255;not null" json:"location"`
	ContactNumber    string        `gorm:"size:10;not null" json:"contactNumber"`
	PlantName        string        `gorm:"size:150;not null" json:"plantName"`
	DiseaseName      string        `gorm:"size:150;not null" json:"diseaseName"`
	IssueDescription string        `gorm:"type:text;not null" json:"issueDescription"`
	Status           InquiryStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ManagerResponse  string        `gorm:"type:text" json:"managerResponse,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

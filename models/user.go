package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleFarmer           UserRole = "farmer"
	RoleOrganicFarmer    UserRole = "organic-farmer"
	RoleCropFarmer       UserRole = "crop-farmer"
	RoleGreenhouseFarmer UserRole = "greenhouse-farmer"
	RoleForester         UserRole = "forester"
	RoleGardener         UserRole = "gardener"
	RoleSoilTester       UserRole = "soil-tester"
	RoleResearcher       UserRole = "agricultural-researcher"
	RoleOfficer          UserRole = "agriculture-officer" // manages inquiry responses
	RoleAdmin            UserRole = "admin"
)

// FarmerRoles are the self-service roles a user may pick at registration.
// Staff roles (admin, officer) are assigned by an admin, never self-assigned.
var FarmerRoles = []UserRole{
	RoleFarmer,
	RoleOrganicFarmer,
	RoleCropFarmer,
	RoleGreenhouseFarmer,
	RoleForester,
	RoleGardener,
	RoleSoilTester,
	RoleResearcher,
}

func IsValidRole(r UserRole) bool {
	for _, role := range FarmerRoles {
		if r == role {
			return true
		}
	}
	return r == RoleAdmin || r == RoleOfficer
}

func IsFarmerRole(r UserRole) bool {
	for _, role := range FarmerRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaffRole reports whether the role may see and manage every inquiry.
func IsStaffRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleOfficer
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Role        UserRole  `gorm:"type:varchar(30);not null;default:'farmer'" json:"role"`
	FullName    string    `gorm:"size:150;not null" json:"fullName"`
	PhoneNumber string    `gorm:"size:20" json:"phoneNumber,omitempty"`
	Location    string    `gorm:"size:255" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Inquiries []Inquiry `json:"inquiries,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleFamilyAgent   UserRole = "family_agent"
	RoleTranslator    UserRole = "translator"
	RoleForeignLawyer UserRole = "foreign_lawyer"
	RoleFamilyViewer  UserRole = "family_viewer"
	RoleAdmin         UserRole = "admin"
)

// AllRoles lists every role the system knows about. Anything else is treated
// as an unknown role and granted nothing.
var AllRoles = []UserRole{
	RoleFamilyAgent,
	RoleTranslator,
	RoleForeignLawyer,
	RoleFamilyViewer,
	RoleAdmin,
}

func (r UserRole) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Role      UserRole       `json:"role" gorm:"default:'family_viewer'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

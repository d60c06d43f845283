package services

import "lawfirm-cms/models"

// Actor is the authenticated caller as established by the auth middleware.
type Actor struct {
	UserID   uint
	Username string
	Role     models.UserRole
}

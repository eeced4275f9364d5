package models

import "gorm.io/gorm"

// User accounts are created by admins or seeded; there is no self-signup.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"` // "admin", "agent", "finance"
}

// ValidRole reports whether role is one of the recognized staff roles.
func ValidRole(role string) bool {
	switch role {
	case "admin", "agent", "finance":
		return true
	}
	return false
}

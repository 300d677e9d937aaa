package models

import (
	"gorm.io/gorm"
)

const (
	RolePatient      = "patient"
	RoleNutritionist = "nutritionist"
)

// User is the local profile row for an identity the external auth provider
// vouches for. No credentials live here; the JWT carries the id and role.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	FullName string
	Role     string `gorm:"size:16;not null"` // "patient" | "nutritionist"
}

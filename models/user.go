package models

import (
	"time"
)

// Roles recognized by the authorization gate.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleReadOnly   = "read-only"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Role         string    `json:"role" gorm:"not null;size:20"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleReadOnly:
		return true
	}
	return false
}

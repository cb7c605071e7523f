package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"reporter":   true,
	"editor":     true,
	"admin":      true,
	"superadmin": true,
}

// Identity is the resolved caller of a request: a session token mapped
// to an application profile. Handlers receive it explicitly, there is
// no ambient session state.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity may perform moderation actions
func (i *Identity) IsAdmin() bool {
	return i != nil && (i.Role == "admin" || i.Role == "superadmin")
}

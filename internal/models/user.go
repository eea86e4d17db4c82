package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleClient UserRole = "CLIENT"
	UserRoleWorker UserRole = "WORKER"
)

// Valid reports whether the role is one of the known roles.
// Role is immutable after sign-up.
func (r UserRole) Valid() bool {
	return r == UserRoleClient || r == UserRoleWorker
}

// User represents an identity record in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

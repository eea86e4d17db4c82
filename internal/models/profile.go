package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkerProfile represents the trade profile of a WORKER user (1:1 with User)
type WorkerProfile struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Trade        string    `json:"trade" db:"trade"`
	City         string    `json:"city" db:"city"`
	Area         string    `json:"area" db:"area"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	Skills       []string  `json:"skills,omitempty" db:"skills"`
	RadiusKm     *int      `json:"radius_km,omitempty" db:"radius_km"`
	PathToYou    *string   `json:"path_to_you,omitempty" db:"path_to_you"`
	NetworkSteps *int      `json:"network_steps,omitempty" db:"network_steps"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ClientProfile represents the profile of a CLIENT user (1:1 with User)
type ClientProfile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city" db:"city"`
	Area      string    `json:"area" db:"area"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

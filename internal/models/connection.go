package models

import (
	"time"

	"github.com/google/uuid"
)

// Connection is an accepted, undirected edge between two users.
// Storage invariant: user_a_id always sorts lower than user_b_id, so every
// unordered pair occupies exactly one row.
type Connection struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserAID   uuid.UUID `json:"user_a_id" db:"user_a_id"`
	UserBID   uuid.UUID `json:"user_b_id" db:"user_b_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ConnectionRequestStatus represents the state of a connection request
type ConnectionRequestStatus string

const (
	ConnectionRequestPending  ConnectionRequestStatus = "PENDING"
	ConnectionRequestAccepted ConnectionRequestStatus = "ACCEPTED"
	ConnectionRequestDeclined ConnectionRequestStatus = "DECLINED"
)

// ConnectionRequest is a directed invitation to form a Connection
type ConnectionRequest struct {
	ID         uuid.UUID               `json:"id" db:"id"`
	SenderID   uuid.UUID               `json:"sender_id" db:"sender_id"`
	ReceiverID uuid.UUID               `json:"receiver_id" db:"receiver_id"`
	Status     ConnectionRequestStatus `json:"status" db:"status"`
	CreatedAt  time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at" db:"updated_at"`
}

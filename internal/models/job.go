package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle status of a job
type JobStatus string

const (
	JobStatusPendingVerification JobStatus = "PENDING_VERIFICATION"
	JobStatusInProgress          JobStatus = "IN_PROGRESS"
	JobStatusCompleted           JobStatus = "COMPLETED"
	JobStatusCancelled           JobStatus = "CANCELLED"
)

// JobVerificationStatus represents how strongly a job is verified
type JobVerificationStatus string

const (
	JobUnverified      JobVerificationStatus = "UNVERIFIED"
	JobClientConfirmed JobVerificationStatus = "CLIENT_CONFIRMED"
	JobFullyVerified   JobVerificationStatus = "FULLY_VERIFIED"
)

// Job records a unit of work between a client and a worker.
// Rows are insert-only; there is no update path.
type Job struct {
	ID                 uuid.UUID             `json:"id" db:"id"`
	WorkerID           uuid.UUID             `json:"worker_id" db:"worker_id"`
	ClientID           uuid.UUID             `json:"client_id" db:"client_id"`
	Title              string                `json:"title" db:"title"`
	Description        *string               `json:"description,omitempty" db:"description"`
	City               string                `json:"city" db:"city"`
	Area               string                `json:"area" db:"area"`
	Status             JobStatus             `json:"status" db:"status"`
	VerificationStatus JobVerificationStatus `json:"verification_status" db:"verification_status"`
	CreatedAt          time.Time             `json:"created_at" db:"created_at"`
}

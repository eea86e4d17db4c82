package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewVisibility represents whether a review is publicly visible
type ReviewVisibility string

const (
	ReviewVisibilityPublic  ReviewVisibility = "PUBLIC"
	ReviewVisibilityPrivate ReviewVisibility = "PRIVATE"
)

// Review represents a client's review of a worker for a specific job.
// SentimentScore is a 0-1 decimal produced by sentiment analysis of the text.
type Review struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	JobID           uuid.UUID        `json:"job_id" db:"job_id"`
	ReviewerID      uuid.UUID        `json:"reviewer_id" db:"reviewer_id"`
	RevieweeID      uuid.UUID        `json:"reviewee_id" db:"reviewee_id"`
	ReferrerID      *uuid.UUID       `json:"referrer_id,omitempty" db:"referrer_id"`
	AuthorID        uuid.UUID        `json:"author_id" db:"author_id"`
	Text            string           `json:"text" db:"text"`
	Punctuality     int              `json:"punctuality" db:"punctuality"`
	Communication   int              `json:"communication" db:"communication"`
	PricingFairness int              `json:"pricing_fairness" db:"pricing_fairness"`
	Skill           int              `json:"skill" db:"skill"`
	SentimentScore  decimal.Decimal  `json:"sentiment_score" db:"sentiment_score"`
	IsReferralBased bool             `json:"is_referral_based" db:"is_referral_based"`
	Visibility      ReviewVisibility `json:"visibility" db:"visibility"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

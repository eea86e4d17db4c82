package models

import (
	"time"

	"github.com/google/uuid"
)

// TrustScoreSnapshot is a point-in-time trust figure for a worker.
// Snapshots are append-only; the most recent computed_at wins.
type TrustScoreSnapshot struct {
	ID         uuid.UUID `json:"id" db:"id"`
	WorkerID   uuid.UUID `json:"worker_id" db:"worker_id"`
	Total      int       `json:"total" db:"total"`
	Sentiment  int       `json:"sentiment" db:"sentiment"`
	Referrals  int       `json:"referrals" db:"referrals"`
	Verified   int       `json:"verified" db:"verified"`
	Freshness  int       `json:"freshness" db:"freshness"`
	ComputedAt time.Time `json:"computed_at" db:"computed_at"`
}

// TrustBreakdown is the display-facing slice of a trust snapshot.
// A worker with no snapshot yet renders as all zeros.
type TrustBreakdown struct {
	Total     int `json:"total"`
	Sentiment int `json:"sentiment"`
	Referrals int `json:"referrals"`
	Verified  int `json:"verified"`
}

// Breakdown converts a snapshot into its display form. A nil snapshot
// yields the zero breakdown, keeping "no data yet" a data-layer concern.
func (s *TrustScoreSnapshot) Breakdown() TrustBreakdown {
	if s == nil {
		return TrustBreakdown{}
	}
	return TrustBreakdown{
		Total:     s.Total,
		Sentiment: s.Sentiment,
		Referrals: s.Referrals,
		Verified:  s.Verified,
	}
}

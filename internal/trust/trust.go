package trust

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/monitoring"
)

// Service errors
var (
	ErrWorkerNotFound        = errors.New("worker not found")
	ErrClientProfileNotFound = errors.New("client profile not found")
)

// First-hire seed values: a worker's very first snapshot starts from a
// modest baseline rather than zero, so one verified hire registers.
const (
	seedTotal     = 5
	seedSentiment = 3
	seedReferrals = 1
	seedVerified  = 1
	seedFreshness = 90
)

// Per-hire increments applied to an existing snapshot. Sentiment and
// freshness only move when reviews are recomputed, not on hire.
const (
	hireTotalDelta     = 2
	hireVerifiedDelta  = 1
	hireReferralsDelta = 1
)

// Service aggregates jobs and reviews into trust figures
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new trust service
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// WorkerDashboardStats are the counters on the worker dashboard
type WorkerDashboardStats struct {
	TrustScore        int `json:"trustScore"`
	ReferralsReceived int `json:"referralsReceived"`
	VerifiedJobs      int `json:"verifiedJobs"`
}

// ClientStats are the counters on a client's profile card.
// PeopleConnected and ReviewsWritten are definitional aliases of
// PeopleEmployed and EmployeeReviews respectively.
type ClientStats struct {
	PeopleEmployed  int `json:"peopleEmployed"`
	JobsPosted      int `json:"jobsPosted"`
	EmployeeReviews int `json:"employeeReviews"`
	PeopleConnected int `json:"peopleConnected"`
	WorkersVouching int `json:"workersVouching"`
	ReviewsWritten  int `json:"reviewsWritten"`
}

// HireResult reports a recorded hire
type HireResult struct {
	JobID uuid.UUID
}

// NewSeedSnapshot returns the snapshot created for a worker's first hire
func NewSeedSnapshot(workerID uuid.UUID) models.TrustScoreSnapshot {
	return models.TrustScoreSnapshot{
		WorkerID:  workerID,
		Total:     seedTotal,
		Sentiment: seedSentiment,
		Referrals: seedReferrals,
		Verified:  seedVerified,
		Freshness: seedFreshness,
	}
}

// ApplyHire returns the breakdown after one hire against an existing snapshot
func ApplyHire(b models.TrustBreakdown) models.TrustBreakdown {
	return models.TrustBreakdown{
		Total:     b.Total + hireTotalDelta,
		Sentiment: b.Sentiment,
		Referrals: b.Referrals + hireReferralsDelta,
		Verified:  b.Verified + hireVerifiedDelta,
	}
}

// NewClientStats derives the full stats set from the four underlying counts
func NewClientStats(peopleEmployed, jobsPosted, employeeReviews, workersVouching int) ClientStats {
	return ClientStats{
		PeopleEmployed:  peopleEmployed,
		JobsPosted:      jobsPosted,
		EmployeeReviews: employeeReviews,
		PeopleConnected: peopleEmployed,
		WorkersVouching: workersVouching,
		ReviewsWritten:  employeeReviews,
	}
}

// CurrentTrust returns the most recent snapshot for a worker, or nil when
// none has been computed yet. Absence is not an error; the zero default is
// applied at the presentation boundary.
func (s *Service) CurrentTrust(ctx context.Context, workerID uuid.UUID) (*models.TrustScoreSnapshot, error) {
	var snap models.TrustScoreSnapshot
	err := s.db.QueryRow(ctx, `
		SELECT id, worker_id, total, sentiment, referrals, verified, freshness, computed_at
		FROM trust_score_snapshots
		WHERE worker_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`, workerID).Scan(
		&snap.ID, &snap.WorkerID, &snap.Total, &snap.Sentiment,
		&snap.Referrals, &snap.Verified, &snap.Freshness, &snap.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trust snapshot: %w", err)
	}
	return &snap, nil
}

// RecordHire records a direct hire of a worker by a client: it creates a
// completed, fully verified job and bumps the worker's trust snapshot, all
// in one transaction. The bump is a single additive UPDATE so concurrent
// hires cannot lose increments.
func (s *Service) RecordHire(ctx context.Context, clientUserID, workerID uuid.UUID) (*HireResult, error) {
	var clientProfileID uuid.UUID
	var clientCity, clientArea string
	err := s.db.QueryRow(ctx, `
		SELECT id, city, area FROM client_profiles WHERE user_id = $1
	`, clientUserID).Scan(&clientProfileID, &clientCity, &clientArea)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientProfileNotFound
		}
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}

	var workerCity, workerArea string
	err = s.db.QueryRow(ctx, `
		SELECT city, area FROM worker_profiles WHERE id = $1
	`, workerID).Scan(&workerCity, &workerArea)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker profile: %w", err)
	}

	city, area := clientCity, clientArea
	if city == "" {
		city = workerCity
	}
	if area == "" {
		area = workerArea
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var jobID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO jobs (worker_id, client_id, title, description, city, area, status, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, workerID, clientProfileID, hireJobTitle(time.Now()),
		"Direct hire recorded from the client dashboard.",
		city, area, models.JobStatusCompleted, models.JobFullyVerified,
	).Scan(&jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to create hire job: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE trust_score_snapshots
		SET total = total + $1, verified = verified + $2, referrals = referrals + $3
		WHERE id = (
			SELECT id FROM trust_score_snapshots
			WHERE worker_id = $4
			ORDER BY computed_at DESC
			LIMIT 1
		)
	`, hireTotalDelta, hireVerifiedDelta, hireReferralsDelta, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update trust snapshot: %w", err)
	}

	if tag.RowsAffected() == 0 {
		seed := NewSeedSnapshot(workerID)
		_, err = tx.Exec(ctx, `
			INSERT INTO trust_score_snapshots (worker_id, total, sentiment, referrals, verified, freshness)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, seed.WorkerID, seed.Total, seed.Sentiment, seed.Referrals, seed.Verified, seed.Freshness)
		if err != nil {
			return nil, fmt.Errorf("failed to seed trust snapshot: %w", err)
		}
		monitoring.Get().TrustSnapshotsSeeded.Inc()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	monitoring.Get().HiresRecorded.Inc()

	return &HireResult{JobID: jobID}, nil
}

// WorkerDashboardStats returns the dashboard counters for a worker user
func (s *Service) WorkerDashboardStats(ctx context.Context, userID uuid.UUID) (*WorkerDashboardStats, error) {
	var workerID uuid.UUID
	err := s.db.QueryRow(ctx, `
		SELECT id FROM worker_profiles WHERE user_id = $1
	`, userID).Scan(&workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker profile: %w", err)
	}

	stats := &WorkerDashboardStats{}

	snap, err := s.CurrentTrust(ctx, workerID)
	if err != nil {
		return nil, err
	}
	stats.TrustScore = snap.Breakdown().Total

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews
		WHERE reviewee_id = $1 AND is_referral_based
	`, workerID).Scan(&stats.ReferralsReceived)
	if err != nil {
		return nil, fmt.Errorf("failed to count referral reviews: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM jobs
		WHERE worker_id = $1 AND verification_status IN ($2, $3)
	`, workerID, models.JobClientConfirmed, models.JobFullyVerified).Scan(&stats.VerifiedJobs)
	if err != nil {
		return nil, fmt.Errorf("failed to count verified jobs: %w", err)
	}

	return stats, nil
}

// ClientStats returns the profile counters for a client profile. A profile
// with no jobs or reviews yields all zeros, never an error.
func (s *Service) ClientStats(ctx context.Context, clientProfileID uuid.UUID) (*ClientStats, error) {
	var peopleEmployed, jobsPosted, employeeReviews, workersVouching int

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT worker_id), COUNT(*)
		FROM jobs WHERE client_id = $1
	`, clientProfileID).Scan(&peopleEmployed, &jobsPosted)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews WHERE reviewer_id = $1
	`, clientProfileID).Scan(&employeeReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to count authored reviews: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews WHERE referrer_id = $1
	`, clientProfileID).Scan(&workersVouching)
	if err != nil {
		return nil, fmt.Errorf("failed to count vouching reviews: %w", err)
	}

	stats := NewClientStats(peopleEmployed, jobsPosted, employeeReviews, workersVouching)
	return &stats, nil
}

// hireJobTitle embeds the hire date in the en-US M/D/YYYY form
func hireJobTitle(now time.Time) string {
	return fmt.Sprintf("Direct hire - %d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

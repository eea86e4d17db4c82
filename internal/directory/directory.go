package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/monitoring"
)

// Service errors
var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// SearchLimit caps directory search results. The search is an unranked
// substring match; the cap keeps the response bounded.
const SearchLimit = 12

// Service shapes worker profiles into display-ready summaries
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new directory service
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// WorkerSummary is the display-ready shape of a worker profile with its
// latest trust snapshot attached
type WorkerSummary struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	Trade              string                `json:"trade"`
	City               string                `json:"city"`
	Area               string                `json:"area"`
	LocationLabel      string                `json:"locationLabel"`
	Trust              models.TrustBreakdown `json:"trust"`
	SentimentTags      []string              `json:"sentimentTags"`
	PathToYou          *string               `json:"pathToYou,omitempty"`
	InYourNetworkSteps *int                  `json:"inYourNetworkSteps,omitempty"`
}

// SearchResult pairs a matching summary with the owning user id
type SearchResult struct {
	UserID  uuid.UUID     `json:"userId"`
	Summary WorkerSummary `json:"summary"`
}

// WorkerDetail is a single worker page: the summary plus contact email and
// a handful of same-trade peers
type WorkerDetail struct {
	WorkerSummary
	Email string `json:"email"`
}

// NewWorkerSummary builds a summary from a profile and its latest snapshot.
// A nil snapshot renders as zero trust.
func NewWorkerSummary(profile *models.WorkerProfile, snapshot *models.TrustScoreSnapshot) WorkerSummary {
	tags := profile.Skills
	if tags == nil {
		tags = []string{}
	}
	return WorkerSummary{
		ID:                 profile.ID,
		Name:               profile.Name,
		Trade:              profile.Trade,
		City:               profile.City,
		Area:               profile.Area,
		LocationLabel:      fmt.Sprintf("%s, %s", profile.Area, profile.City),
		Trust:              snapshot.Breakdown(),
		SentimentTags:      tags,
		PathToYou:          profile.PathToYou,
		InYourNetworkSteps: profile.NetworkSteps,
	}
}

// NewFallbackSummary shapes a user without a worker profile into the same
// summary form, with zero trust. Used when request lists and network views
// must render a client-side counterpart.
func NewFallbackSummary(userID uuid.UUID, name string, role models.UserRole, clientProfile *models.ClientProfile) WorkerSummary {
	id := userID
	city := "Unknown city"
	area := "Unknown area"
	if clientProfile != nil {
		id = clientProfile.ID
		city = clientProfile.City
		area = clientProfile.Area
	}

	trade := "Worker"
	if role == models.UserRoleClient {
		trade = "Client"
	}

	return WorkerSummary{
		ID:            id,
		Name:          name,
		Trade:         trade,
		City:          city,
		Area:          area,
		LocationLabel: fmt.Sprintf("%s, %s", area, city),
		Trust:         models.TrustBreakdown{},
		SentimentTags: []string{},
	}
}

// summarySelect joins each worker profile with its most recent snapshot
const summarySelect = `
	SELECT wp.id, wp.user_id, wp.name, wp.trade, wp.city, wp.area,
		wp.bio, wp.skills, wp.radius_km, wp.path_to_you, wp.network_steps,
		wp.created_at, wp.updated_at,
		ts.id, ts.worker_id, ts.total, ts.sentiment, ts.referrals,
		ts.verified, ts.freshness, ts.computed_at
	FROM worker_profiles wp
	LEFT JOIN LATERAL (
		SELECT id, worker_id, total, sentiment, referrals, verified, freshness, computed_at
		FROM trust_score_snapshots
		WHERE worker_id = wp.id
		ORDER BY computed_at DESC
		LIMIT 1
	) ts ON TRUE
`

// Search performs a case-insensitive substring match over worker name,
// trade, city, and area. An empty or whitespace query returns an empty
// result list, not an error.
func (s *Service) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	monitoring.Get().DirectorySearches.Inc()

	pattern := "%" + query + "%"
	rows, err := s.db.Query(ctx, summarySelect+`
		WHERE wp.name ILIKE $1 OR wp.trade ILIKE $1 OR wp.city ILIKE $1 OR wp.area ILIKE $1
		LIMIT $2
	`, pattern, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search workers: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		profile, snapshot, err := scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{
			UserID:  profile.UserID,
			Summary: NewWorkerSummary(profile, snapshot),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search results: %w", err)
	}

	return results, nil
}

// Summaries returns worker summaries newest-first, optionally filtered by
// trade and capped at limit (0 = no cap)
func (s *Service) Summaries(ctx context.Context, limit int, trade string) ([]WorkerSummary, error) {
	sql := summarySelect
	args := []any{}
	if trade != "" {
		sql += " WHERE wp.trade = $1"
		args = append(args, trade)
	}
	sql += " ORDER BY wp.created_at DESC"
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	summaries := []WorkerSummary{}
	for rows.Next() {
		profile, snapshot, err := scanSummaryRow(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, NewWorkerSummary(profile, snapshot))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return summaries, nil
}

// SummaryByID returns the summary for a worker profile id
func (s *Service) SummaryByID(ctx context.Context, workerID uuid.UUID) (*WorkerSummary, error) {
	row := s.db.QueryRow(ctx, summarySelect+" WHERE wp.id = $1", workerID)
	profile, snapshot, err := scanSummaryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	summary := NewWorkerSummary(profile, snapshot)
	return &summary, nil
}

// SummaryByUserID returns the summary for the worker profile owned by a
// user, or nil when the user has no worker profile
func (s *Service) SummaryByUserID(ctx context.Context, userID uuid.UUID) (*WorkerSummary, error) {
	row := s.db.QueryRow(ctx, summarySelect+" WHERE wp.user_id = $1", userID)
	profile, snapshot, err := scanSummaryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	summary := NewWorkerSummary(profile, snapshot)
	return &summary, nil
}

// Detail returns a worker page: the summary, the account email, and up to
// five peers in the same trade (excluding the worker itself)
func (s *Service) Detail(ctx context.Context, workerID uuid.UUID) (*WorkerDetail, []WorkerSummary, error) {
	summary, err := s.SummaryByID(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}

	var email string
	err = s.db.QueryRow(ctx, `
		SELECT u.email FROM users u
		JOIN worker_profiles wp ON wp.user_id = u.id
		WHERE wp.id = $1
	`, workerID).Scan(&email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get worker email: %w", err)
	}

	peers, err := s.Summaries(ctx, 5, summary.Trade)
	if err != nil {
		return nil, nil, err
	}
	filtered := peers[:0]
	for _, peer := range peers {
		if peer.ID != summary.ID {
			filtered = append(filtered, peer)
		}
	}

	return &WorkerDetail{WorkerSummary: *summary, Email: email}, filtered, nil
}

// scanRow abstracts pgx.Row and pgx.Rows for summary scanning
type scanRow interface {
	Scan(dest ...any) error
}

func scanSummaryRow(row scanRow) (*models.WorkerProfile, *models.TrustScoreSnapshot, error) {
	var profile models.WorkerProfile
	var snapID *uuid.UUID
	var snapWorkerID *uuid.UUID
	var total, sentiment, referrals, verified, freshness *int
	var computedAt *time.Time

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Trade,
		&profile.City, &profile.Area, &profile.Bio, &profile.Skills,
		&profile.RadiusKm, &profile.PathToYou, &profile.NetworkSteps,
		&profile.CreatedAt, &profile.UpdatedAt,
		&snapID, &snapWorkerID, &total, &sentiment, &referrals,
		&verified, &freshness, &computedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, pgx.ErrNoRows
		}
		return nil, nil, fmt.Errorf("failed to scan worker summary: %w", err)
	}

	var snapshot *models.TrustScoreSnapshot
	if snapID != nil {
		snapshot = &models.TrustScoreSnapshot{
			ID:         *snapID,
			WorkerID:   *snapWorkerID,
			Total:      *total,
			Sentiment:  *sentiment,
			Referrals:  *referrals,
			Verified:   *verified,
			Freshness:  *freshness,
			ComputedAt: *computedAt,
		}
	}

	return &profile, snapshot, nil
}

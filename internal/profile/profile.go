package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/trust"
)

// Service errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRoleMismatch    = errors.New("profile kind does not match user role")
)

// Service manages the 1:1 worker and client profiles
type Service struct {
	db    *pgxpool.Pool
	trust *trust.Service
}

// NewService creates a new profile service
func NewService(db *pgxpool.Pool, trustSvc *trust.Service) *Service {
	return &Service{
		db:    db,
		trust: trustSvc,
	}
}

// WorkerUpsertRequest carries the editable worker profile fields
type WorkerUpsertRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=100"`
	Trade    string   `json:"trade" binding:"required,min=1,max=100"`
	City     string   `json:"city" binding:"required,min=1,max=100"`
	Area     string   `json:"area" binding:"required,min=1,max=100"`
	Bio      *string  `json:"bio,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	RadiusKm *int     `json:"radiusKm,omitempty"`
}

// ClientUpsertRequest carries the editable client profile fields
type ClientUpsertRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	City string `json:"city" binding:"required,min=1,max=100"`
	Area string `json:"area" binding:"required,min=1,max=100"`
}

// WorkerProfileView is a worker profile with its latest trust snapshot
type WorkerProfileView struct {
	ID       uuid.UUID             `json:"id"`
	UserID   uuid.UUID             `json:"userId"`
	Name     string                `json:"name"`
	Trade    string                `json:"trade"`
	City     string                `json:"city"`
	Area     string                `json:"area"`
	Bio      *string               `json:"bio,omitempty"`
	Skills   []string              `json:"skills"`
	RadiusKm *int                  `json:"radiusKm,omitempty"`
	Trust    models.TrustBreakdown `json:"trust"`
}

// ClientProfileView is a client profile with its derived stats
type ClientProfileView struct {
	ID     uuid.UUID         `json:"id"`
	UserID uuid.UUID         `json:"userId"`
	Name   string            `json:"name"`
	City   string            `json:"city"`
	Area   string            `json:"area"`
	Stats  trust.ClientStats `json:"stats"`
}

// UpsertResult reports whether the upsert created a new profile row
type UpsertResult struct {
	Created bool
}

// UpsertWorker creates or replaces the worker profile for a WORKER user.
// The user's display name is kept in sync in the same transaction.
func (s *Service) UpsertWorker(ctx context.Context, userID uuid.UUID, req *WorkerUpsertRequest) (*WorkerProfileView, *UpsertResult, error) {
	if err := s.requireRole(ctx, userID, models.UserRoleWorker); err != nil {
		return nil, nil, err
	}

	name := strings.TrimSpace(req.Name)
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var profile models.WorkerProfile
	var inserted bool
	err = tx.QueryRow(ctx, `
		INSERT INTO worker_profiles (user_id, name, trade, city, area, bio, skills, radius_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, trade = EXCLUDED.trade,
			city = EXCLUDED.city, area = EXCLUDED.area,
			bio = EXCLUDED.bio, skills = EXCLUDED.skills,
			radius_km = EXCLUDED.radius_km, updated_at = NOW()
		RETURNING id, user_id, name, trade, city, area, bio, skills, radius_km,
			path_to_you, network_steps, created_at, updated_at,
			(xmax = 0)
	`, userID, name, req.Trade, req.City, req.Area, req.Bio, skills, req.RadiusKm).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Trade,
		&profile.City, &profile.Area, &profile.Bio, &profile.Skills,
		&profile.RadiusKm, &profile.PathToYou, &profile.NetworkSteps,
		&profile.CreatedAt, &profile.UpdatedAt, &inserted,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upsert worker profile: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2
	`, name, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sync user name: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	snap, err := s.trust.CurrentTrust(ctx, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	view := newWorkerView(&profile, snap)
	return &view, &UpsertResult{Created: inserted}, nil
}

// UpsertClient creates or replaces the client profile for a CLIENT user,
// syncing the user's display name in the same transaction
func (s *Service) UpsertClient(ctx context.Context, userID uuid.UUID, req *ClientUpsertRequest) (*ClientProfileView, *UpsertResult, error) {
	if err := s.requireRole(ctx, userID, models.UserRoleClient); err != nil {
		return nil, nil, err
	}

	name := strings.TrimSpace(req.Name)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var profile models.ClientProfile
	var inserted bool
	err = tx.QueryRow(ctx, `
		INSERT INTO client_profiles (user_id, name, city, area)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name, city = EXCLUDED.city,
			area = EXCLUDED.area, updated_at = NOW()
		RETURNING id, user_id, name, city, area, created_at, updated_at, (xmax = 0)
	`, userID, name, req.City, req.Area).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.City,
		&profile.Area, &profile.CreatedAt, &profile.UpdatedAt, &inserted,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upsert client profile: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2
	`, name, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sync user name: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	stats, err := s.trust.ClientStats(ctx, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	view := newClientView(&profile, *stats)
	return &view, &UpsertResult{Created: inserted}, nil
}

// WorkerByUserID returns the worker profile view for a user
func (s *Service) WorkerByUserID(ctx context.Context, userID uuid.UUID) (*WorkerProfileView, error) {
	var profile models.WorkerProfile
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, trade, city, area, bio, skills, radius_km,
			path_to_you, network_steps, created_at, updated_at
		FROM worker_profiles WHERE user_id = $1
	`, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Trade,
		&profile.City, &profile.Area, &profile.Bio, &profile.Skills,
		&profile.RadiusKm, &profile.PathToYou, &profile.NetworkSteps,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get worker profile: %w", err)
	}

	snap, err := s.trust.CurrentTrust(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	view := newWorkerView(&profile, snap)
	return &view, nil
}

// ClientByUserID returns the client profile view for a user
func (s *Service) ClientByUserID(ctx context.Context, userID uuid.UUID) (*ClientProfileView, error) {
	var profile models.ClientProfile
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, city, area, created_at, updated_at
		FROM client_profiles WHERE user_id = $1
	`, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.City,
		&profile.Area, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}

	stats, err := s.trust.ClientStats(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	view := newClientView(&profile, *stats)
	return &view, nil
}

func (s *Service) requireRole(ctx context.Context, userID uuid.UUID, role models.UserRole) error {
	var got models.UserRole
	err := s.db.QueryRow(ctx, "SELECT role FROM users WHERE id = $1", userID).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user role: %w", err)
	}
	if got != role {
		return ErrRoleMismatch
	}
	return nil
}

func newWorkerView(profile *models.WorkerProfile, snap *models.TrustScoreSnapshot) WorkerProfileView {
	skills := profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return WorkerProfileView{
		ID:       profile.ID,
		UserID:   profile.UserID,
		Name:     profile.Name,
		Trade:    profile.Trade,
		City:     profile.City,
		Area:     profile.Area,
		Bio:      profile.Bio,
		Skills:   skills,
		RadiusKm: profile.RadiusKm,
		Trust:    snap.Breakdown(),
	}
}

func newClientView(profile *models.ClientProfile, stats trust.ClientStats) ClientProfileView {
	return ClientProfileView{
		ID:     profile.ID,
		UserID: profile.UserID,
		Name:   profile.Name,
		City:   profile.City,
		Area:   profile.Area,
		Stats:  stats,
	}
}

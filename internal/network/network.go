package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnet-app/trustnet/internal/directory"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/monitoring"
	"github.com/trustnet-app/trustnet/internal/trust"
)

// Service errors
var (
	ErrSelfRequest      = errors.New("cannot send a connection request to yourself")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyConnected = errors.New("users are already connected")
	ErrRequestPending   = errors.New("a pending request already exists between the pair")
	ErrRequestNotFound  = errors.New("connection request not found")
	ErrNotReceiver      = errors.New("only the receiver may respond to a request")
	ErrAlreadyProcessed = errors.New("connection request already processed")
)

// Service resolves a user's one-hop network and mediates the connection
// request lifecycle
type Service struct {
	db        *pgxpool.Pool
	trust     *trust.Service
	directory *directory.Service
}

// NewService creates a new network service
func NewService(db *pgxpool.Pool, trustSvc *trust.Service, directorySvc *directory.Service) *Service {
	return &Service{
		db:        db,
		trust:     trustSvc,
		directory: directorySvc,
	}
}

// Entry is one peer in a user's one-hop network. Exactly one of Worker and
// Client is set, according to Role.
type Entry struct {
	UserID uuid.UUID                `json:"userId"`
	Role   models.UserRole          `json:"role"`
	Worker *directory.WorkerSummary `json:"worker,omitempty"`
	Client *ClientEntry             `json:"client,omitempty"`
}

// ClientEntry is the client-side shape of a network entry
type ClientEntry struct {
	Name  string            `json:"name"`
	City  string            `json:"city"`
	Area  string            `json:"area"`
	Stats trust.ClientStats `json:"stats"`
}

// RequestEntry is a pending request enriched with the counterpart's summary
type RequestEntry struct {
	RequestID uuid.UUID                      `json:"requestId"`
	UserID    uuid.UUID                      `json:"userId"`
	Status    models.ConnectionRequestStatus `json:"status"`
	Summary   directory.WorkerSummary        `json:"summary"`
}

// RequestLists are a user's pending requests, split by direction
type RequestLists struct {
	Sent     []RequestEntry `json:"sent"`
	Received []RequestEntry `json:"received"`
}

// Stats are the network counters for a user
type Stats struct {
	PeopleConnected int `json:"peopleConnected"`
	WorkersVouching int `json:"workersVouching"`
	ReviewsWritten  int `json:"reviewsWritten"`
}

// peer is the resolved far side of a connection or request
type peer struct {
	userID        uuid.UUID
	name          string
	role          models.UserRole
	clientProfile *models.ClientProfile
}

// ListConnections returns the one-hop network of a user. WORKER peers are
// shaped as worker summaries, CLIENT peers as client stats. Peers whose
// corresponding profile is missing are silently skipped.
func (s *Service) ListConnections(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.name, u.role
		FROM connections c
		JOIN users u ON u.id = CASE WHEN c.user_a_id = $1 THEN c.user_b_id ELSE c.user_a_id END
		WHERE c.user_a_id = $1 OR c.user_b_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var peers []peer
	for rows.Next() {
		var p peer
		if err := rows.Scan(&p.userID, &p.name, &p.role); err != nil {
			return nil, fmt.Errorf("failed to scan connection peer: %w", err)
		}
		peers = append(peers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	entries := []Entry{}
	for _, p := range peers {
		switch p.role {
		case models.UserRoleWorker:
			summary, err := s.directory.SummaryByUserID(ctx, p.userID)
			if err != nil {
				return nil, err
			}
			if summary == nil {
				continue
			}
			entries = append(entries, Entry{UserID: p.userID, Role: p.role, Worker: summary})
		case models.UserRoleClient:
			profile, err := s.clientProfileByUserID(ctx, p.userID)
			if err != nil {
				return nil, err
			}
			if profile == nil {
				continue
			}
			stats, err := s.trust.ClientStats(ctx, profile.ID)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{
				UserID: p.userID,
				Role:   p.role,
				Client: &ClientEntry{
					Name:  p.name,
					City:  profile.City,
					Area:  profile.Area,
					Stats: *stats,
				},
			})
		}
	}

	return entries, nil
}

// SendRequest creates a PENDING connection request from sender to receiver
func (s *Service) SendRequest(ctx context.Context, senderID, receiverID uuid.UUID) (uuid.UUID, error) {
	if senderID == receiverID {
		return uuid.Nil, ErrSelfRequest
	}

	var userCount int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE id = $1 OR id = $2
	`, senderID, receiverID).Scan(&userCount)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check users: %w", err)
	}
	if userCount != 2 {
		return uuid.Nil, ErrUserNotFound
	}

	userAID, userBID := NormalizePair(senderID, receiverID)
	var connected bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM connections WHERE user_a_id = $1 AND user_b_id = $2)
	`, userAID, userBID).Scan(&connected)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check existing connection: %w", err)
	}
	if connected {
		return uuid.Nil, ErrAlreadyConnected
	}

	var pending bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM connection_requests
			WHERE status = $1 AND (
				(sender_id = $2 AND receiver_id = $3) OR
				(sender_id = $3 AND receiver_id = $2)
			)
		)
	`, models.ConnectionRequestPending, senderID, receiverID).Scan(&pending)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return uuid.Nil, ErrRequestPending
	}

	var requestID uuid.UUID
	err = s.db.QueryRow(ctx, `
		INSERT INTO connection_requests (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, senderID, receiverID, models.ConnectionRequestPending).Scan(&requestID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create connection request: %w", err)
	}

	monitoring.Get().ConnectionRequestsSent.Inc()

	return requestID, nil
}

// AcceptRequest marks a request ACCEPTED and upserts the connection for
// the normalized pair. The two writes share one transaction: a request can
// never be accepted without its connection, or the reverse. The connection
// upsert is idempotent; an existing row is left untouched.
func (s *Service) AcceptRequest(ctx context.Context, requestID, actingUserID uuid.UUID) error {
	var req models.ConnectionRequest
	err := s.db.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at, updated_at
		FROM connection_requests WHERE id = $1
	`, requestID).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to get connection request: %w", err)
	}

	if req.ReceiverID != actingUserID {
		return ErrNotReceiver
	}
	if req.Status != models.ConnectionRequestPending {
		return ErrAlreadyProcessed
	}

	userAID, userBID := NormalizePair(req.SenderID, req.ReceiverID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE connection_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, models.ConnectionRequestAccepted, requestID)
	if err != nil {
		return fmt.Errorf("failed to accept connection request: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO connections (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT (user_a_id, user_b_id) DO NOTHING
	`, userAID, userBID)
	if err != nil {
		return fmt.Errorf("failed to upsert connection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	monitoring.Get().ConnectionRequestsAccepted.Inc()

	return nil
}

// PendingRequests returns the user's pending requests: sent newest-first,
// received oldest-first, each enriched with the counterpart's summary
func (s *Service) PendingRequests(ctx context.Context, userID uuid.UUID) (*RequestLists, error) {
	sent, err := s.pendingRequestsByDirection(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	received, err := s.pendingRequestsByDirection(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return &RequestLists{Sent: sent, Received: received}, nil
}

func (s *Service) pendingRequestsByDirection(ctx context.Context, userID uuid.UUID, sent bool) ([]RequestEntry, error) {
	// Sent requests surface newest-first; received oldest-first so the
	// earliest invitation is answered first.
	sql := `
		SELECT cr.id, cr.status, u.id, u.name, u.role
		FROM connection_requests cr
		JOIN users u ON u.id = cr.receiver_id
		WHERE cr.sender_id = $1 AND cr.status = $2
		ORDER BY cr.created_at DESC
	`
	if !sent {
		sql = `
		SELECT cr.id, cr.status, u.id, u.name, u.role
		FROM connection_requests cr
		JOIN users u ON u.id = cr.sender_id
		WHERE cr.receiver_id = $1 AND cr.status = $2
		ORDER BY cr.created_at ASC
	`
	}

	rows, err := s.db.Query(ctx, sql, userID, models.ConnectionRequestPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list connection requests: %w", err)
	}
	defer rows.Close()

	type pendingRow struct {
		requestID uuid.UUID
		status    models.ConnectionRequestStatus
		p         peer
	}

	var pending []pendingRow
	for rows.Next() {
		var row pendingRow
		if err := rows.Scan(&row.requestID, &row.status, &row.p.userID, &row.p.name, &row.p.role); err != nil {
			return nil, fmt.Errorf("failed to scan connection request: %w", err)
		}
		pending = append(pending, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connection requests: %w", err)
	}

	entries := []RequestEntry{}
	for _, row := range pending {
		summary, err := s.counterpartSummary(ctx, row.p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, RequestEntry{
			RequestID: row.requestID,
			UserID:    row.p.userID,
			Status:    row.status,
			Summary:   summary,
		})
	}

	return entries, nil
}

// counterpartSummary shapes the far side of a request: the worker summary
// when one exists, otherwise the zero-trust client-style fallback
func (s *Service) counterpartSummary(ctx context.Context, p peer) (directory.WorkerSummary, error) {
	summary, err := s.directory.SummaryByUserID(ctx, p.userID)
	if err != nil {
		return directory.WorkerSummary{}, err
	}
	if summary != nil {
		return *summary, nil
	}

	profile, err := s.clientProfileByUserID(ctx, p.userID)
	if err != nil {
		return directory.WorkerSummary{}, err
	}
	return directory.NewFallbackSummary(p.userID, p.name, p.role, profile), nil
}

// NetworkStats returns the network counters for a user: distinct one-hop
// peers, WORKER peers among them, and reviews the user has authored
func (s *Service) NetworkStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT other.id),
			COUNT(DISTINCT other.id) FILTER (WHERE other.role = $2)
		FROM connections c
		JOIN users other ON other.id = CASE WHEN c.user_a_id = $1 THEN c.user_b_id ELSE c.user_a_id END
		WHERE c.user_a_id = $1 OR c.user_b_id = $1
	`, userID, models.UserRoleWorker).Scan(&stats.PeopleConnected, &stats.WorkersVouching)
	if err != nil {
		return nil, fmt.Errorf("failed to count connections: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reviews WHERE author_id = $1
	`, userID).Scan(&stats.ReviewsWritten)
	if err != nil {
		return nil, fmt.Errorf("failed to count authored reviews: %w", err)
	}

	return stats, nil
}

func (s *Service) clientProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error) {
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
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}
	return &profile, nil
}

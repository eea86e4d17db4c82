package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/trustnet-app/trustnet/internal/config"
	"github.com/trustnet-app/trustnet/internal/models"
)

// Store errors
var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session expired")
	ErrSessionRevoked = errors.New("session revoked")
)

// Session is the authenticated caller attached to a request context.
// It replaces the client-side user singleton: handlers receive it
// explicitly instead of reading shared mutable state.
type Session struct {
	ID     uuid.UUID       `json:"id"`
	UserID uuid.UUID       `json:"user_id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
}

// Claims represents the JWT claims carried by a session token
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Store issues and resolves session tokens. Sessions live in Redis so a
// sign-out revokes the token server-side; with a nil client the store
// degrades to stateless JWT validation.
type Store struct {
	client *redis.Client
	config *config.SessionConfig
}

// NewStore creates a session store backed by the given Redis client
func NewStore(client *redis.Client, cfg *config.SessionConfig) *Store {
	return &Store{
		client: client,
		config: cfg,
	}
}

// Create opens a session for the user and returns the signed token
func (s *Store) Create(ctx context.Context, user *models.User) (string, error) {
	sess := &Session{
		ID:     uuid.New(),
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}

	now := time.Now()
	claims := &Claims{
		SessionID: sess.ID.String(),
		UserID:    sess.UserID.String(),
		Email:     sess.Email,
		Role:      string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "session",
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if s.client != nil {
		payload, err := json.Marshal(sess)
		if err != nil {
			return "", fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := s.client.Set(ctx, sessionKey(sess.ID.String()), payload, s.config.TTL).Err(); err != nil {
			return "", fmt.Errorf("failed to store session: %w", err)
		}
	}

	return signed, nil
}

// Resolve validates a token and returns the live session
func (s *Store) Resolve(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		payload, err := s.client.Get(ctx, sessionKey(claims.SessionID)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, ErrSessionRevoked
			}
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		var sess Session
		if err := json.Unmarshal(payload, &sess); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return &sess, nil
	}

	return sessionFromClaims(claims)
}

// Revoke ends the session carried by the token. Revoking an already
// revoked or expired session is a no-op.
func (s *Store) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil
	}
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, sessionKey(claims.SessionID)).Err()
}

func (s *Store) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject != "session" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func sessionFromClaims(claims *Claims) (*Session, error) {
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Session{
		ID:     sessionID,
		UserID: userID,
		Email:  claims.Email,
		Role:   models.UserRole(claims.Role),
	}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

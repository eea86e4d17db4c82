package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/config"
	"github.com/trustnet-app/trustnet/internal/models"
)

func testConfig(ttl time.Duration) *config.SessionConfig {
	return &config.SessionConfig{
		JWTSecret: "test-secret-key-for-session-testing",
		TTL:       ttl,
		Issuer:    "trustnet-test",
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "asha@example.com",
		Name:  "Asha Patel",
		Role:  models.UserRoleWorker,
	}
}

// With a nil Redis client the store degrades to stateless JWT validation;
// these tests cover that path.

func TestStore_CreateAndResolve(t *testing.T) {
	store := NewStore(nil, testConfig(time.Hour))
	user := testUser()

	token, err := store.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sess, err := store.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if sess.UserID != user.ID {
		t.Errorf("session user id = %s, want %s", sess.UserID, user.ID)
	}
	if sess.Email != user.Email {
		t.Errorf("session email = %q, want %q", sess.Email, user.Email)
	}
	if sess.Role != models.UserRoleWorker {
		t.Errorf("session role = %q, want WORKER", sess.Role)
	}
}

func TestStore_ResolveExpiredToken(t *testing.T) {
	store := NewStore(nil, testConfig(-time.Minute))

	token, err := store.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = store.Resolve(context.Background(), token)
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Resolve of expired token = %v, want ErrSessionExpired", err)
	}
}

func TestStore_ResolveGarbageToken(t *testing.T) {
	store := NewStore(nil, testConfig(time.Hour))

	_, err := store.Resolve(context.Background(), "not-a-jwt")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Resolve of garbage token = %v, want ErrInvalidToken", err)
	}
}

func TestStore_ResolveWrongSecret(t *testing.T) {
	issuer := NewStore(nil, testConfig(time.Hour))
	token, err := issuer.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	verifier := NewStore(nil, &config.SessionConfig{
		JWTSecret: "a-different-secret-entirely",
		TTL:       time.Hour,
		Issuer:    "trustnet-test",
	})

	_, err = verifier.Resolve(context.Background(), token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Resolve with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestStore_RevokeInvalidTokenIsNoOp(t *testing.T) {
	store := NewStore(nil, testConfig(time.Hour))

	if err := store.Revoke(context.Background(), "not-a-jwt"); err != nil {
		t.Errorf("Revoke of invalid token = %v, want nil", err)
	}
}

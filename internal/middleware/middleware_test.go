package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/config"
	"github.com/trustnet-app/trustnet/internal/models"
	"github.com/trustnet-app/trustnet/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionStore(ttl time.Duration) *session.Store {
	return session.NewStore(nil, &config.SessionConfig{
		JWTSecret: "test-secret-key-for-middleware-tests",
		TTL:       ttl,
		Issuer:    "trustnet-test",
	})
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestIDFromContext(c)})
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("X-Request-ID header should be set")
	}
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("generated request id %q is not a UUID", header)
	}

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["request_id"] != header {
		t.Errorf("context request id %q != header %q", body["request_id"], header)
	}
}

func TestRequestID_PropagatedWhenPresent(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied-id" {
		t.Errorf("request id = %q, want the caller's", got)
	}
}

func TestSessionResolver_AnonymousPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(SessionResolver(newSessionStore(time.Hour)))
	router.GET("/whoami", func(c *gin.Context) {
		if GetSessionFromContext(c) != nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("anonymous request status = %d, want 200", w.Code)
	}
	var body map[string]bool
	json.Unmarshal(w.Body.Bytes(), &body)
	if !body["anonymous"] {
		t.Error("request without a token should be anonymous")
	}
}

func TestSessionResolver_ValidTokenAttachesSession(t *testing.T) {
	store := newSessionStore(time.Hour)
	user := &models.User{
		ID:    uuid.New(),
		Email: "meera@example.com",
		Name:  "Meera Nair",
		Role:  models.UserRoleClient,
	}
	token, err := store.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(SessionResolver(store))
	router.GET("/whoami", func(c *gin.Context) {
		sess := GetSessionFromContext(c)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": sess.UserID.String()})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["user_id"] != user.ID.String() {
		t.Errorf("session user id = %q, want %q", body["user_id"], user.ID)
	}
}

func TestSessionResolver_ExpiredTokenRejected(t *testing.T) {
	expired := newSessionStore(-time.Minute)
	token, err := expired.Create(context.Background(), &models.User{
		ID:    uuid.New(),
		Email: "old@example.com",
		Role:  models.UserRoleClient,
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(SessionResolver(newSessionStore(time.Hour)))
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expired token status = %d, want 401", w.Code)
	}
}

func TestSessionResolver_MalformedTokenTreatedAsAnonymous(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.Use(SessionResolver(newSessionStore(time.Hour)))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"has_session": GetSessionFromContext(c) != nil})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("malformed token status = %d, want 200", w.Code)
	}
	var body map[string]bool
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["has_session"] {
		t.Error("malformed token should not attach a session")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q, want the request origin", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q for a disallowed origin, want empty", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"*"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "http://anywhere.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
}

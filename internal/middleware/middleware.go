package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/session"
)

// Context keys
const (
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// SessionResolver resolves a bearer session token, when present, into an
// explicit session object on the request context. Requests without a token
// pass through untouched; the API surface itself is keyed on explicit user
// ids, so a session is contextual, not required.
func SessionResolver(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		sess, err := store.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrSessionExpired) {
				respondWithError(c, apierrors.ErrSessionExpiredError)
				c.Abort()
				return
			}
			// Invalid or revoked tokens are treated as anonymous
			c.Next()
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// GetSessionFromContext extracts the session from the gin context.
// Returns nil for anonymous requests.
func GetSessionFromContext(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// GetRequestIDFromContext extracts the request ID from the gin context
func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

func extractBearerToken(authHeader string) string {
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}

func respondWithError(c *gin.Context, err *apierrors.APIError) {
	requestID := c.GetString(ContextKeyRequestID)
	c.JSON(err.HTTPStatus, apierrors.NewErrorResponse(err, requestID))
}

// CORS configures CORS headers
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, o := range allowedOrigins {
			if o == origin || o == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "43200") // 12 hours
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

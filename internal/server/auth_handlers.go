package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/auth"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/middleware"
	"github.com/trustnet-app/trustnet/internal/monitoring"
)

// handleSignUp handles account creation
func (s *APIServer) handleSignUp(c *gin.Context) {
	var req auth.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	resp, err := s.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case auth.ErrEmailAlreadyExists:
			respondError(c, apierrors.NewConflictError(apierrors.ErrEmailTaken, "Email already registered"))
		case auth.ErrInvalidRole:
			respondError(c, apierrors.NewValidationError("Role must be CLIENT or WORKER"))
		default:
			respondInternalError(c, err, "auth", "sign_up")
		}
		return
	}

	monitoring.Get().SignUpsTotal.WithLabelValues(string(resp.User.Role)).Inc()

	c.JSON(http.StatusCreated, resp)
}

// handleSignIn handles credential sign-in
func (s *APIServer) handleSignIn(c *gin.Context) {
	var req auth.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	resp, err := s.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case auth.ErrUserNotFound:
			respondError(c, apierrors.ErrUserNotFoundError)
		case auth.ErrInvalidPassword:
			respondError(c, apierrors.ErrInvalidCredentialsError)
		default:
			respondInternalError(c, err, "auth", "sign_in")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleSignOut revokes the caller's session. Requests without a token are
// a no-op success; sign-out is idempotent.
func (s *APIServer) handleSignOut(c *gin.Context) {
	token := bearerToken(c)
	if token != "" {
		if err := s.authService.SignOut(c.Request.Context(), token); err != nil {
			respondInternalError(c, err, "auth", "sign_out")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// handleMe returns the account behind the current session
func (s *APIServer) handleMe(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	if sess == nil {
		respondError(c, apierrors.ErrSessionExpiredError)
		return
	}

	user, err := s.authService.UserByID(c.Request.Context(), sess.UserID)
	if err != nil {
		if err == auth.ErrUserNotFound {
			respondError(c, apierrors.ErrUserNotFoundError)
		} else {
			respondInternalError(c, err, "auth", "me")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// handleGetUser returns a user by id, without sensitive fields
func (s *APIServer) handleGetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierrors.NewValidationError("id must be a valid UUID"))
		return
	}

	user, err := s.authService.UserByID(c.Request.Context(), userID)
	if err != nil {
		if err == auth.ErrUserNotFound {
			respondError(c, apierrors.ErrUserNotFoundError)
		} else {
			respondInternalError(c, err, "auth", "get_user")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return header[len(prefix):]
}

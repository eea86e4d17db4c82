package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/profile"
)

type workerProfileUpsertRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	profile.WorkerUpsertRequest
}

type clientProfileUpsertRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	profile.ClientUpsertRequest
}

// handleUpsertWorkerProfile creates or replaces a worker profile.
// Responds 201 on first creation, 200 on subsequent updates.
func (s *APIServer) handleUpsertWorkerProfile(c *gin.Context) {
	var req workerProfileUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	view, result, err := s.profileService.UpsertWorker(c.Request.Context(), req.UserID, &req.WorkerUpsertRequest)
	if err != nil {
		respondProfileError(c, err, "upsert_worker")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, view)
}

// handleGetWorkerProfile returns the worker profile for a user
func (s *APIServer) handleGetWorkerProfile(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	view, err := s.profileService.WorkerByUserID(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err, "get_worker")
		return
	}

	c.JSON(http.StatusOK, view)
}

// handleUpsertClientProfile creates or replaces a client profile
func (s *APIServer) handleUpsertClientProfile(c *gin.Context) {
	var req clientProfileUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	view, result, err := s.profileService.UpsertClient(c.Request.Context(), req.UserID, &req.ClientUpsertRequest)
	if err != nil {
		respondProfileError(c, err, "upsert_client")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, view)
}

// handleGetClientProfile returns the client profile for a user
func (s *APIServer) handleGetClientProfile(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	view, err := s.profileService.ClientByUserID(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err, "get_client")
		return
	}

	c.JSON(http.StatusOK, view)
}

func respondProfileError(c *gin.Context, err error, operation string) {
	switch err {
	case profile.ErrUserNotFound:
		respondError(c, apierrors.ErrUserNotFoundError)
	case profile.ErrProfileNotFound:
		respondError(c, apierrors.NewNotFoundError(apierrors.ErrProfileNotFound, "Profile not found."))
	case profile.ErrRoleMismatch:
		respondError(c, apierrors.NewInvalidRequestError("Profile kind does not match the user's role"))
	default:
		respondInternalError(c, err, "profile", operation)
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/logging"
	"github.com/trustnet-app/trustnet/internal/middleware"
	"github.com/trustnet-app/trustnet/internal/trust"
)

type hireRequestBody struct {
	ClientUserID uuid.UUID `json:"clientUserId" binding:"required"`
	WorkerID     uuid.UUID `json:"workerId" binding:"required"`
}

// handleHire records a direct hire of a worker by a client
func (s *APIServer) handleHire(c *gin.Context) {
	var req hireRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	result, err := s.trustService.RecordHire(c.Request.Context(), req.ClientUserID, req.WorkerID)
	if err != nil {
		switch err {
		case trust.ErrClientProfileNotFound:
			respondError(c, apierrors.NewNotFoundError(apierrors.ErrProfileNotFound, "Client profile not found."))
		case trust.ErrWorkerNotFound:
			respondError(c, apierrors.ErrWorkerNotFoundError)
		default:
			respondInternalError(c, err, "trust", "record_hire")
		}
		return
	}

	requestID := middleware.GetRequestIDFromContext(c)
	logging.LogHireEvent(requestID, req.ClientUserID.String(), req.WorkerID.String(), result.JobID.String())

	c.JSON(http.StatusOK, gin.H{
		"message": "Hire recorded",
		"jobId":   result.JobID,
	})
}

// handleWorkerDashboardStats returns the dashboard counters for a worker user
func (s *APIServer) handleWorkerDashboardStats(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	stats, err := s.trustService.WorkerDashboardStats(c.Request.Context(), userID)
	if err != nil {
		if err == trust.ErrWorkerNotFound {
			respondError(c, apierrors.ErrWorkerNotFoundError)
		} else {
			respondInternalError(c, err, "trust", "worker_dashboard_stats")
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

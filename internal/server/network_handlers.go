package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/logging"
	"github.com/trustnet-app/trustnet/internal/middleware"
	"github.com/trustnet-app/trustnet/internal/network"
)

type sendConnectionRequestBody struct {
	SenderID   uuid.UUID `json:"senderId" binding:"required"`
	ReceiverID uuid.UUID `json:"receiverId" binding:"required"`
}

type acceptConnectionRequestBody struct {
	RequestID uuid.UUID `json:"requestId" binding:"required"`
	UserID    uuid.UUID `json:"userId" binding:"required"`
}

// handleSendConnectionRequest creates a pending connection request
func (s *APIServer) handleSendConnectionRequest(c *gin.Context) {
	var req sendConnectionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	requestID, err := s.networkService.SendRequest(c.Request.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		switch err {
		case network.ErrSelfRequest:
			respondError(c, apierrors.NewValidationError("You cannot send a connection request to yourself"))
		case network.ErrUserNotFound:
			respondError(c, apierrors.ErrUserNotFoundError)
		case network.ErrAlreadyConnected:
			respondError(c, apierrors.NewConflictError(apierrors.ErrAlreadyConnected, "You are already connected"))
		case network.ErrRequestPending:
			respondError(c, apierrors.NewConflictError(apierrors.ErrRequestPending, "A connection request between you is already pending"))
		default:
			respondInternalError(c, err, "network", "send_request")
		}
		return
	}

	logging.LogConnectionEvent(middleware.GetRequestIDFromContext(c), "request_sent",
		req.SenderID.String(), req.ReceiverID.String())

	c.JSON(http.StatusCreated, gin.H{"requestId": requestID})
}

// handleAcceptConnectionRequest accepts a pending request as the receiver
func (s *APIServer) handleAcceptConnectionRequest(c *gin.Context) {
	var req acceptConnectionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.NewValidationError(err.Error()))
		return
	}

	err := s.networkService.AcceptRequest(c.Request.Context(), req.RequestID, req.UserID)
	if err != nil {
		switch err {
		case network.ErrRequestNotFound:
			respondError(c, apierrors.NewNotFoundError(apierrors.ErrRequestNotFound, "Connection request not found."))
		case network.ErrNotReceiver:
			respondError(c, apierrors.NewForbiddenError("Only the receiver can accept this request"))
		case network.ErrAlreadyProcessed:
			respondError(c, &apierrors.APIError{
				Code:       apierrors.ErrAlreadyProcessed,
				Message:    "This request has already been processed",
				HTTPStatus: http.StatusBadRequest,
			})
		default:
			respondInternalError(c, err, "network", "accept_request")
		}
		return
	}

	logging.LogConnectionEvent(middleware.GetRequestIDFromContext(c), "request_accepted",
		req.RequestID.String(), req.UserID.String())

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleListPendingRequests returns the user's pending requests by direction
func (s *APIServer) handleListPendingRequests(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	lists, err := s.networkService.PendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "network", "pending_requests")
		return
	}

	c.JSON(http.StatusOK, lists)
}

// handleListConnections returns the user's one-hop network
func (s *APIServer) handleListConnections(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	entries, err := s.networkService.ListConnections(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "network", "list_connections")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// handleNetworkStats returns the user's network counters
func (s *APIServer) handleNetworkStats(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	stats, err := s.networkService.NetworkStats(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "network", "network_stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

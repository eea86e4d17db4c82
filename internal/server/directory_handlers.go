package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trustnet-app/trustnet/internal/directory"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
)

// handleNetworkSearch performs a capped substring search over worker
// profiles. An empty query is a valid request with an empty result list.
func (s *APIServer) handleNetworkSearch(c *gin.Context) {
	results, err := s.directoryService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondInternalError(c, err, "directory", "search")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// handleListWorkers lists worker summaries, optionally filtered by trade
func (s *APIServer) handleListWorkers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, apierrors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	summaries, err := s.directoryService.Summaries(c.Request.Context(), limit, c.Query("trade"))
	if err != nil {
		respondInternalError(c, err, "directory", "list_workers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers": summaries})
}

// handleGetWorkerDetail returns a single worker page with same-trade peers
func (s *APIServer) handleGetWorkerDetail(c *gin.Context) {
	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierrors.NewValidationError("id must be a valid UUID"))
		return
	}

	detail, peers, err := s.directoryService.Detail(c.Request.Context(), workerID)
	if err != nil {
		if err == directory.ErrWorkerNotFound {
			respondError(c, apierrors.ErrWorkerNotFoundError)
		} else {
			respondInternalError(c, err, "directory", "worker_detail")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"worker": detail,
		"peers":  peers,
	})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustnet-app/trustnet/internal/auth"
	"github.com/trustnet-app/trustnet/internal/config"
	"github.com/trustnet-app/trustnet/internal/directory"
	apierrors "github.com/trustnet-app/trustnet/internal/errors"
	"github.com/trustnet-app/trustnet/internal/logging"
	"github.com/trustnet-app/trustnet/internal/middleware"
	"github.com/trustnet-app/trustnet/internal/monitoring"
	"github.com/trustnet-app/trustnet/internal/network"
	"github.com/trustnet-app/trustnet/internal/profile"
	"github.com/trustnet-app/trustnet/internal/session"
	"github.com/trustnet-app/trustnet/internal/trust"
)

// APIServer represents the main API server
type APIServer struct {
	config           *config.Config
	router           *gin.Engine
	db               *pgxpool.Pool
	authService      *auth.Service
	profileService   *profile.Service
	trustService     *trust.Service
	directoryService *directory.Service
	networkService   *network.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer(cfg *config.Config, db *pgxpool.Pool, sessions *session.Store) *APIServer {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware in order
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(monitoring.MetricsMiddleware())
	router.Use(logging.RequestLogger())
	router.Use(middleware.SessionResolver(sessions))

	trustService := trust.NewService(db)
	directoryService := directory.NewService(db)

	srv := &APIServer{
		config:           cfg,
		router:           router,
		db:               db,
		authService:      auth.NewService(db, sessions),
		profileService:   profile.NewService(db, trustService),
		trustService:     trustService,
		directoryService: directoryService,
		networkService:   network.NewService(db, trustService, directoryService),
	}

	srv.setupRoutes()
	return srv
}

// Router returns the gin router
func (s *APIServer) Router() http.Handler {
	return s.router
}

// setupRoutes configures all API routes
func (s *APIServer) setupRoutes() {
	// Health check
	s.router.GET("/health", s.healthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		// Auth routes (public)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", s.handleSignUp)
			authGroup.POST("/signin", s.handleSignIn)
			authGroup.POST("/signout", s.handleSignOut)
			authGroup.GET("/me", s.handleMe)
		}

		// User lookup
		v1.GET("/users/:id", s.handleGetUser)

		// Profile routes
		profiles := v1.Group("/profiles")
		{
			profiles.PUT("/worker", s.handleUpsertWorkerProfile)
			profiles.GET("/worker", s.handleGetWorkerProfile)
			profiles.PUT("/client", s.handleUpsertClientProfile)
			profiles.GET("/client", s.handleGetClientProfile)
		}

		// Connection graph routes
		connections := v1.Group("/connections")
		{
			connections.POST("/requests", s.handleSendConnectionRequest)
			connections.POST("/requests/accept", s.handleAcceptConnectionRequest)
			connections.GET("/requests", s.handleListPendingRequests)
			connections.GET("/network", s.handleListConnections)
		}

		// Directory routes (public)
		workers := v1.Group("/workers")
		{
			workers.GET("/", s.handleListWorkers)
			workers.GET("/:id", s.handleGetWorkerDetail)
		}
		v1.GET("/network-search", s.handleNetworkSearch)

		// Stats and trust routes
		v1.GET("/network-stats", s.handleNetworkStats)
		v1.GET("/worker-dashboard-stats", s.handleWorkerDashboardStats)
		v1.POST("/hire", s.handleHire)
	}
}

// Health check handler
func (s *APIServer) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "api",
	})
}

// respondError sends a standardized error response
func respondError(c *gin.Context, err *apierrors.APIError) {
	requestID := middleware.GetRequestIDFromContext(c)
	c.JSON(err.HTTPStatus, apierrors.NewErrorResponse(err, requestID))
}

// respondInternalError logs the underlying error server-side and answers
// with the generic 500. The caller only ever sees the sanitized message.
func respondInternalError(c *gin.Context, err error, component, operation string) {
	logging.LogError(err, middleware.GetRequestIDFromContext(c), component, operation)
	respondError(c, apierrors.ErrInternalServerError)
}

// queryUUID parses a required UUID query parameter, responding with a
// validation error when it is missing or malformed
func queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		respondError(c, apierrors.NewValidationError(name+" is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, apierrors.NewValidationError(name+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

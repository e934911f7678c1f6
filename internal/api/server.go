package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfare/internal/cache"
	"skyfare/internal/config"
	"skyfare/internal/database"
	"skyfare/internal/flights"
	"skyfare/internal/handlers"
	"skyfare/internal/logger"
	"skyfare/internal/messaging"
	"skyfare/internal/metrics"
	"skyfare/internal/middleware"
	"skyfare/internal/payment"
	"skyfare/internal/repository"
	"skyfare/internal/search"
	"skyfare/internal/seatmap"
	"skyfare/internal/service"
	"skyfare/internal/workflow"
)

// Server is the HTTP API. Postgres, Valkey, NATS and Elasticsearch are each
// optional: any subsystem whose address is unset is skipped, and the server
// falls back to in-memory stores and generated flights.
type Server struct {
	router      *gin.Engine
	config      *config.Config
	db          *database.DB
	cacheClient *cache.Client
	nats        *messaging.NATSClient
	services    *service.Services
	sessions    *workflow.Controller
}

func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	log := logger.Get()

	var db *database.DB
	if cfg.Database.Enabled() {
		var err error
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.RunMigrations(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		log.Info("No database configured, using in-memory stores")
	}

	var cacheClient *cache.Client
	if cfg.Cache.Enabled() {
		var err error
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to cache: %w", err)
		}
	}

	var natsClient *messaging.NATSClient
	if cfg.NATS.Enabled() {
		var err error
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
	}

	var catalog *search.FlightCatalog
	if cfg.Search.Enabled() {
		var err error
		catalog, err = search.NewFlightCatalog(cfg.Search)
		if err != nil {
			return nil, fmt.Errorf("failed to create flight catalog: %w", err)
		}
	}

	var stores *repository.Stores
	if db != nil {
		stores = repository.NewPostgresStores(db)
	} else {
		stores = repository.NewMemoryStores()
	}

	services := service.NewServices(stores, catalog, flights.New(), natsClient)
	sessions := workflow.NewController(
		seatmap.New(),
		payment.NewSimulatedProcessor(cfg.Payment),
		stores.Bookings,
		natsClient,
	)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		cacheClient: cacheClient,
		nats:        natsClient,
		services:    services,
		sessions:    sessions,
	}
	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.sessions, s.cacheClient)

	api := s.router.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.GET("/:id", h.GetBooking)
		}

		api.POST("/search-flights", h.SearchFlights)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("/:id", h.GetSession)
			sessions.POST("/:id/flight", h.SelectFlight)
			sessions.POST("/:id/seats/toggle", h.ToggleSeat)
			sessions.POST("/:id/proceed", h.ProceedToPayment)
			sessions.POST("/:id/payment", h.SubmitPayment)
			sessions.POST("/:id/back", h.Back)
			sessions.POST("/:id/reset", h.ResetSession)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	payload := gin.H{
		"status":  "ok",
		"service": "skyfare-api",
	}

	if s.db != nil {
		check := s.db.HealthCheck(c.Request.Context())
		payload["database"] = check
		if check.Status != "healthy" {
			payload["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, payload)
			return
		}
	}

	c.JSON(http.StatusOK, payload)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the optional subsystem connections.
func (s *Server) Cleanup() error {
	log := logger.Get()

	if err := s.nats.Close(); err != nil {
		log.Error("Error closing NATS connection", "error", err)
	}

	if s.cacheClient != nil {
		if err := s.cacheClient.Close(); err != nil {
			log.Error("Error closing cache connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}

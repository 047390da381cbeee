// Package api provides the HTTP API server and handlers for the tāst planner.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store/sqlite"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        *sqlite.Store
	services     *Services
	sseHandler   *sse.Handler
	sseManager   *sse.Manager
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *sqlite.Store, services *Services, sseHandler *sse.Handler, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:        store,
		services:     services,
		sseHandler:   sseHandler,
		sseManager:   sseManager,
		router:       router,
		logger:       logger,
		writeLimiter: NewRateLimiter(120, time.Minute, 30),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Tast API", "1.0.0")
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stop releases resources owned by the server.
func (s *Server) Stop() {
	s.writeLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(s.writeLimiter, s.logger))
}

// setupRoutes registers all huma operations plus the raw SSE stream.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerItemRoutes()
	s.registerCampaignRoutes()
	s.registerPlanRoutes()
	s.registerAnalyticsRoutes()
	s.registerSearchRoutes()
	s.registerSettingsRoutes()
	s.registerImportRoutes()

	// SSE streaming does not fit the huma request/response model, so the
	// handler mounts directly on the chi router.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/store"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

type HealthResponse struct {
	Status     string                     `json:"status" doc:"Worst status across components"`
	Components map[string]ComponentHealth `json:"components"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"database": s.checkDatabase(ctx),
		"search":   s.checkSearchIndex(),
		"sse":      s.checkSSEManager(),
	}

	overall := statusHealthy
	for _, c := range components {
		overall = worstStatus(overall, c.Status)
	}

	return &HealthOutput{Body: HealthResponse{
		Status:     overall,
		Components: components,
	}}, nil
}

// worstStatus orders unhealthy > degraded > healthy.
func worstStatus(a, b string) string {
	if a == statusUnhealthy || b == statusUnhealthy {
		return statusUnhealthy
	}
	if a == statusDegraded || b == statusDegraded {
		return statusDegraded
	}
	return statusHealthy
}

// checkDatabase does a cheap settings read. A missing key still proves
// the connection works.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{Status: statusDegraded, Message: "database not configured"}
	}

	start := time.Now()
	_, err := s.store.GetSetting(ctx, "brand_voice")
	latency := time.Since(start).String()

	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return ComponentHealth{Status: statusUnhealthy, Latency: latency, Message: "database read failed"}
	}
	return ComponentHealth{Status: statusHealthy, Latency: latency}
}

func (s *Server) checkSearchIndex() ComponentHealth {
	if s.services == nil || s.services.Search == nil {
		return ComponentHealth{Status: statusDegraded, Message: "search service not configured"}
	}

	start := time.Now()
	_, err := s.services.Search.DocumentCount()
	latency := time.Since(start).String()

	if err != nil {
		return ComponentHealth{Status: statusUnhealthy, Latency: latency, Message: "search index unreachable"}
	}
	return ComponentHealth{Status: statusHealthy, Latency: latency}
}

func (s *Server) checkSSEManager() ComponentHealth {
	if s.sseManager == nil {
		return ComponentHealth{Status: statusDegraded, Message: "SSE manager not configured"}
	}

	count := s.sseManager.ClientCount()
	msg := strconv.Itoa(count) + " connected clients"
	switch count {
	case 0:
		msg = "no connected clients"
	case 1:
		msg = "1 connected client"
	}
	return ComponentHealth{Status: statusHealthy, Message: msg}
}

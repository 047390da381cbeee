package api

import (
	"github.com/obi-coffee/tast-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Content   *service.ContentService
	Campaign  *service.CampaignService
	Planner   *service.PlannerService
	Analytics *service.AnalyticsService
	Search    *service.SearchService
	Settings  *service.SettingsService
	Import    *service.ImportService
}

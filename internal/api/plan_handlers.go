package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/service"
)

func (s *Server) registerPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getPlanItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/plan/items",
		Summary:     "Get the mirrored item collection",
		Description: "Returns the locally mirrored content collection without touching the store",
		Tags:        []string{"Plan"},
	}, s.handleGetPlanItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlanCampaigns",
		Method:      http.MethodGet,
		Path:        "/api/v1/plan/campaigns",
		Summary:     "Get the mirrored campaign collection",
		Tags:        []string{"Plan"},
	}, s.handleGetPlanCampaigns)

	huma.Register(s.api, huma.Operation{
		OperationID: "applyPlanItems",
		Method:      http.MethodPost,
		Path:        "/api/v1/plan/items",
		Summary:     "Apply a proposed item collection",
		Description: "Diffs the proposal against the mirror, issues the minimal create/update/delete set, and returns the refreshed collection with a per-operation failure report",
		Tags:        []string{"Plan"},
	}, s.handleApplyPlanItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "applyPlanCampaigns",
		Method:      http.MethodPost,
		Path:        "/api/v1/plan/campaigns",
		Summary:     "Apply a proposed campaign collection",
		Tags:        []string{"Plan"},
	}, s.handleApplyPlanCampaigns)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshPlan",
		Method:      http.MethodPost,
		Path:        "/api/v1/plan/refresh",
		Summary:     "Refetch both collections into the mirror",
		Tags:        []string{"Plan"},
	}, s.handleRefreshPlan)
}

// === DTOs ===

// ApplyItemsInput carries a proposed item collection.
type ApplyItemsInput struct {
	Body struct {
		Items []domain.ContentItem `json:"items" doc:"Proposed complete item collection"`
	}
}

// ApplyItemsResponse contains the refreshed collection and the apply report.
type ApplyItemsResponse struct {
	Items  []domain.ContentItem `json:"items" doc:"Refreshed authoritative collection"`
	Result *service.ApplyResult `json:"result" doc:"Per-operation apply report"`
}

// ApplyItemsOutput wraps the apply response for Huma.
type ApplyItemsOutput struct {
	Body ApplyItemsResponse
}

// ApplyCampaignsInput carries a proposed campaign collection.
type ApplyCampaignsInput struct {
	Body struct {
		Campaigns []domain.Campaign `json:"campaigns" doc:"Proposed complete campaign collection"`
	}
}

// ApplyCampaignsResponse contains the refreshed collection and the apply report.
type ApplyCampaignsResponse struct {
	Campaigns []domain.Campaign    `json:"campaigns" doc:"Refreshed authoritative collection"`
	Result    *service.ApplyResult `json:"result" doc:"Per-operation apply report"`
}

// ApplyCampaignsOutput wraps the apply response for Huma.
type ApplyCampaignsOutput struct {
	Body ApplyCampaignsResponse
}

// RefreshResponse reports the refetched collection sizes.
type RefreshResponse struct {
	Items     int `json:"items" doc:"Items refetched into the mirror"`
	Campaigns int `json:"campaigns" doc:"Campaigns refetched into the mirror"`
}

// RefreshOutput wraps the refresh response for Huma.
type RefreshOutput struct {
	Body RefreshResponse
}

// === Handlers ===

func (s *Server) handleGetPlanItems(ctx context.Context, _ *struct{}) (*ItemsOutput, error) {
	items, err := s.services.Planner.Items(ctx)
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleGetPlanCampaigns(ctx context.Context, _ *struct{}) (*CampaignsOutput, error) {
	campaigns, err := s.services.Planner.Campaigns(ctx)
	if err != nil {
		return nil, err
	}

	return &CampaignsOutput{Body: CampaignsResponse{Campaigns: campaigns, Total: len(campaigns)}}, nil
}

func (s *Server) handleApplyPlanItems(ctx context.Context, input *ApplyItemsInput) (*ApplyItemsOutput, error) {
	items, result, err := s.services.Planner.ApplyItems(ctx, input.Body.Items)
	if err != nil {
		return nil, err
	}

	return &ApplyItemsOutput{Body: ApplyItemsResponse{Items: items, Result: result}}, nil
}

func (s *Server) handleApplyPlanCampaigns(ctx context.Context, input *ApplyCampaignsInput) (*ApplyCampaignsOutput, error) {
	campaigns, result, err := s.services.Planner.ApplyCampaigns(ctx, input.Body.Campaigns)
	if err != nil {
		return nil, err
	}

	return &ApplyCampaignsOutput{Body: ApplyCampaignsResponse{Campaigns: campaigns, Result: result}}, nil
}

func (s *Server) handleRefreshPlan(ctx context.Context, _ *struct{}) (*RefreshOutput, error) {
	items, err := s.services.Planner.RefreshItems(ctx)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.services.Planner.RefreshCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	return &RefreshOutput{Body: RefreshResponse{Items: len(items), Campaigns: len(campaigns)}}, nil
}

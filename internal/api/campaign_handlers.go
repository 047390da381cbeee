package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func (s *Server) registerCampaignRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCampaigns",
		Method:      http.MethodGet,
		Path:        "/api/v1/campaigns",
		Summary:     "List campaigns",
		Tags:        []string{"Campaigns"},
	}, s.handleListCampaigns)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCampaign",
		Method:      http.MethodGet,
		Path:        "/api/v1/campaigns/{id}",
		Summary:     "Get a campaign",
		Tags:        []string{"Campaigns"},
	}, s.handleGetCampaign)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCampaignItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/campaigns/{id}/items",
		Summary:     "List a campaign's items",
		Description: "Returns the content items linked to the campaign",
		Tags:        []string{"Campaigns"},
	}, s.handleGetCampaignItems)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCampaign",
		Method:        http.MethodPost,
		Path:          "/api/v1/campaigns",
		Summary:       "Create a campaign",
		Tags:          []string{"Campaigns"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCampaign)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCampaign",
		Method:      http.MethodPut,
		Path:        "/api/v1/campaigns/{id}",
		Summary:     "Update a campaign",
		Tags:        []string{"Campaigns"},
	}, s.handleUpdateCampaign)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteCampaign",
		Method:        http.MethodDelete,
		Path:          "/api/v1/campaigns/{id}",
		Summary:       "Delete a campaign",
		Description:   "Deletes the campaign. Items keep their campaign reference; orphans are tolerated.",
		Tags:          []string{"Campaigns"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteCampaign)
}

// === DTOs ===

// CampaignPayload is the writable part of a campaign.
type CampaignPayload struct {
	Name       string `json:"name" doc:"Campaign name"`
	KeyMessage string `json:"key_message,omitempty" doc:"Key message"`
	DropDate   string `json:"drop_date,omitempty" doc:"Drop date (YYYY-MM-DD)"`
	BigThink   string `json:"big_think,omitempty" doc:"Strategy notes"`
}

func (p *CampaignPayload) toDomain() *domain.Campaign {
	return &domain.Campaign{
		Name:       p.Name,
		KeyMessage: p.KeyMessage,
		DropDate:   p.DropDate,
		BigThink:   p.BigThink,
	}
}

// CampaignsResponse contains the full campaign collection.
type CampaignsResponse struct {
	Campaigns []domain.Campaign `json:"campaigns" doc:"Campaigns, newest first"`
	Total     int               `json:"total" doc:"Number of campaigns"`
}

// CampaignsOutput wraps the campaign list for Huma.
type CampaignsOutput struct {
	Body CampaignsResponse
}

// CampaignOutput wraps a single campaign for Huma.
type CampaignOutput struct {
	Body domain.Campaign
}

// CampaignIDInput identifies a campaign by path parameter.
type CampaignIDInput struct {
	ID string `path:"id" doc:"Campaign ID"`
}

// CampaignWriteInput carries a campaign payload for create.
type CampaignWriteInput struct {
	Body CampaignPayload
}

// CampaignUpdateInput carries a campaign payload for update.
type CampaignUpdateInput struct {
	ID   string `path:"id" doc:"Campaign ID"`
	Body CampaignPayload
}

// === Handlers ===

func (s *Server) handleListCampaigns(ctx context.Context, _ *struct{}) (*CampaignsOutput, error) {
	campaigns, err := s.services.Campaign.ListCampaigns(ctx)
	if err != nil {
		s.logger.Error("Failed to list campaigns", "error", err)
		return nil, err
	}

	return &CampaignsOutput{Body: CampaignsResponse{Campaigns: campaigns, Total: len(campaigns)}}, nil
}

func (s *Server) handleGetCampaign(ctx context.Context, input *CampaignIDInput) (*CampaignOutput, error) {
	campaign, err := s.services.Campaign.GetCampaign(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CampaignOutput{Body: *campaign}, nil
}

func (s *Server) handleGetCampaignItems(ctx context.Context, input *CampaignIDInput) (*ItemsOutput, error) {
	items, err := s.services.Campaign.GetCampaignItems(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleCreateCampaign(ctx context.Context, input *CampaignWriteInput) (*CampaignOutput, error) {
	campaign, err := s.services.Campaign.CreateCampaign(ctx, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	return &CampaignOutput{Body: *campaign}, nil
}

func (s *Server) handleUpdateCampaign(ctx context.Context, input *CampaignUpdateInput) (*CampaignOutput, error) {
	campaign, err := s.services.Campaign.UpdateCampaign(ctx, input.ID, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	return &CampaignOutput{Body: *campaign}, nil
}

func (s *Server) handleDeleteCampaign(ctx context.Context, input *CampaignIDInput) (*struct{}, error) {
	if err := s.services.Campaign.DeleteCampaign(ctx, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

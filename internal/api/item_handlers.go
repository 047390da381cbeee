package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List content items",
		Description: "Returns all content items, newest first",
		Tags:        []string{"Items"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get a content item",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createItem",
		Method:        http.MethodPost,
		Path:          "/api/v1/items",
		Summary:       "Create a content item",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update a content item",
		Tags:        []string{"Items"},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteItem",
		Method:        http.MethodDelete,
		Path:          "/api/v1/items/{id}",
		Summary:       "Delete a content item",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteItem)
}

// === DTOs ===

// ItemPayload is the writable part of a content item.
type ItemPayload struct {
	Title      string          `json:"title" doc:"Item title"`
	Type       string          `json:"type,omitempty" doc:"Content theme"`
	Format     string          `json:"format,omitempty" doc:"Presentation format"`
	Stage      string          `json:"stage,omitempty" doc:"Pipeline stage (defaults to Idea)"`
	Date       string          `json:"date,omitempty" doc:"Scheduled date (YYYY-MM-DD)"`
	CampaignID string          `json:"campaign_id,omitempty" doc:"Linked campaign ID"`
	AssigneeID string          `json:"assignee_id,omitempty" doc:"Assigned team member ID"`
	Notes      string          `json:"notes,omitempty" doc:"Working notes"`
	DraftCopy  string          `json:"draft_copy,omitempty" doc:"Draft copy text"`
	Channels   domain.Channels `json:"channels" doc:"Primary and secondary channels"`
	ImageURLs  []string        `json:"image_urls,omitempty" doc:"Image URLs, first is the cover"`
}

func (p *ItemPayload) toDomain() *domain.ContentItem {
	return &domain.ContentItem{
		Title:      p.Title,
		Type:       p.Type,
		Format:     p.Format,
		Stage:      p.Stage,
		Date:       p.Date,
		CampaignID: p.CampaignID,
		AssigneeID: p.AssigneeID,
		Notes:      p.Notes,
		DraftCopy:  p.DraftCopy,
		Channels:   p.Channels,
		ImageURLs:  p.ImageURLs,
	}
}

// ItemsResponse contains the full item collection.
type ItemsResponse struct {
	Items []domain.ContentItem `json:"items" doc:"Content items, newest first"`
	Total int                  `json:"total" doc:"Number of items"`
}

// ItemsOutput wraps the item list for Huma.
type ItemsOutput struct {
	Body ItemsResponse
}

// ItemOutput wraps a single item for Huma.
type ItemOutput struct {
	Body domain.ContentItem
}

// ItemIDInput identifies an item by path parameter.
type ItemIDInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// ItemWriteInput carries an item payload for create.
type ItemWriteInput struct {
	Body ItemPayload
}

// ItemUpdateInput carries an item payload for update.
type ItemUpdateInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body ItemPayload
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, _ *struct{}) (*ItemsOutput, error) {
	items, err := s.services.Content.ListItems(ctx)
	if err != nil {
		s.logger.Error("Failed to list items", "error", err)
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	item, err := s.services.Content.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *ItemWriteInput) (*ItemOutput, error) {
	item, err := s.services.Content.CreateItem(ctx, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *ItemUpdateInput) (*ItemOutput, error) {
	item, err := s.services.Content.UpdateItem(ctx, input.ID, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *ItemIDInput) (*struct{}, error) {
	if err := s.services.Content.DeleteItem(ctx, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

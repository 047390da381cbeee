package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/errors"
	"github.com/obi-coffee/tast-server/internal/store"
)

// CampaignService orchestrates campaign operations.
type CampaignService struct {
	store  store.CampaignStore
	items  store.ContentStore
	logger *slog.Logger
}

// NewCampaignService creates a new campaign service.
func NewCampaignService(store store.CampaignStore, items store.ContentStore, logger *slog.Logger) *CampaignService {
	return &CampaignService{
		store:  store,
		items:  items,
		logger: logger,
	}
}

func validateCampaign(campaign *domain.Campaign) error {
	if campaign.Name == "" {
		return errors.Validation("name is required")
	}
	return nil
}

// ListCampaigns returns all campaigns, newest first.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.store.ListCampaigns(ctx)
}

// GetCampaign retrieves a campaign by ID.
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.store.GetCampaign(ctx, id)
}

// GetCampaignItems returns the content items linked to a campaign.
func (s *CampaignService) GetCampaignItems(ctx context.Context, id string) ([]domain.ContentItem, error) {
	campaign, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return campaign.LinkedItems(items), nil
}

// CreateCampaign validates and persists a new campaign.
func (s *CampaignService) CreateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateCampaign(campaign); err != nil {
		return nil, err
	}

	campaignID, err := s.store.CreateCampaign(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	created, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("get created campaign: %w", err)
	}

	s.logger.Info("campaign created", "campaign_id", campaignID, "name", created.Name)

	return created, nil
}

// UpdateCampaign validates and persists changes to an existing campaign.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, campaign *domain.Campaign) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateCampaign(campaign); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCampaign(ctx, id, campaign); err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}

	updated, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get updated campaign: %w", err)
	}

	s.logger.Info("campaign updated", "campaign_id", id, "name", updated.Name)

	return updated, nil
}

// DeleteCampaign removes a campaign. Linked items are left in place with
// their campaign reference intact; orphaned references are tolerated.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteCampaign(ctx, id); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}

	s.logger.Info("campaign deleted", "campaign_id", id)

	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/search"
	"github.com/obi-coffee/tast-server/internal/store"
)

// SearchService bridges the search index with the data store, handling
// document creation, updates, and query execution. It implements
// store.SearchIndexer so the store can keep the index in sync on every
// write.
type SearchService struct {
	index     *search.SearchIndex
	items     store.ContentStore
	campaigns store.CampaignStore
	logger    *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	index *search.SearchIndex,
	items store.ContentStore,
	campaigns store.CampaignStore,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		index:     index,
		items:     items,
		campaigns: campaigns,
		logger:    logger,
	}
}

// Search executes a search across content items and campaigns.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexItem indexes a single content item.
// Call this when an item is created or updated.
func (s *SearchService) IndexItem(_ context.Context, item *domain.ContentItem) error {
	doc := search.ItemToSearchDocument(item)

	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index item: %w", err)
	}

	s.logger.Debug("indexed item", "id", item.ID, "title", item.Title)
	return nil
}

// DeleteItem removes a content item from the index.
func (s *SearchService) DeleteItem(_ context.Context, itemID string) error {
	return s.index.DeleteDocument(itemID)
}

// IndexCampaign indexes a single campaign.
func (s *SearchService) IndexCampaign(_ context.Context, campaign *domain.Campaign) error {
	doc := search.CampaignToSearchDocument(campaign)

	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index campaign: %w", err)
	}

	s.logger.Debug("indexed campaign", "id", campaign.ID, "name", campaign.Name)
	return nil
}

// DeleteCampaign removes a campaign from the index.
func (s *SearchService) DeleteCampaign(_ context.Context, campaignID string) error {
	return s.index.DeleteDocument(campaignID)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the entire search index from the store.
// This is a heavy operation - use sparingly.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	// Rebuild index (drops existing)
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	items, err := s.items.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	itemDocs := make([]*search.SearchDocument, 0, len(items))
	for i := range items {
		itemDocs = append(itemDocs, search.ItemToSearchDocument(&items[i]))
	}

	if len(itemDocs) > 0 {
		if err := s.index.IndexDocuments(itemDocs); err != nil {
			return fmt.Errorf("index items: %w", err)
		}
	}
	s.logger.Info("indexed items", "count", len(itemDocs))

	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("list campaigns: %w", err)
	}

	campaignDocs := make([]*search.SearchDocument, 0, len(campaigns))
	for i := range campaigns {
		campaignDocs = append(campaignDocs, search.CampaignToSearchDocument(&campaigns[i]))
	}

	if len(campaignDocs) > 0 {
		if err := s.index.IndexDocuments(campaignDocs); err != nil {
			return fmt.Errorf("index campaigns: %w", err)
		}
	}
	s.logger.Info("indexed campaigns", "count", len(campaignDocs))

	total, _ := s.index.DocumentCount()
	s.logger.Info("full reindex complete", "total_documents", total)

	return nil
}

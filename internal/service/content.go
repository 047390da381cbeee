// Package service provides the business logic layer for the content
// pipeline: item and campaign management, plan reconciliation, analytics
// projections, and search.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/errors"
	"github.com/obi-coffee/tast-server/internal/store"
)

// ContentService orchestrates content item operations.
type ContentService struct {
	store  store.ContentStore
	logger *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(store store.ContentStore, logger *slog.Logger) *ContentService {
	return &ContentService{
		store:  store,
		logger: logger,
	}
}

// validateItem rejects items that cannot be persisted. Enum fields are
// checked here so bad values never reach the store or the search index.
func validateItem(item *domain.ContentItem) error {
	if item.Title == "" {
		return errors.Validation("title is required")
	}
	if item.Stage != "" && !domain.ValidStage(item.Stage) {
		return errors.Validation(fmt.Sprintf("unknown stage %q", item.Stage))
	}
	if item.Type != "" && !domain.ValidType(item.Type) {
		return errors.Validation(fmt.Sprintf("unknown content type %q", item.Type))
	}
	if item.Format != "" && !domain.ValidFormat(item.Format) {
		return errors.Validation(fmt.Sprintf("unknown format %q", item.Format))
	}
	if item.Channels.Primary != "" && !domain.ValidChannel(item.Channels.Primary) {
		return errors.Validation(fmt.Sprintf("unknown channel %q", item.Channels.Primary))
	}
	for _, ch := range item.Channels.Secondary {
		if !domain.ValidChannel(ch) {
			return errors.Validation(fmt.Sprintf("unknown channel %q", ch))
		}
		if ch == item.Channels.Primary {
			return errors.Validation(fmt.Sprintf("channel %q is both primary and secondary", ch))
		}
	}
	return nil
}

// ListItems returns all content items, newest first.
func (s *ContentService) ListItems(ctx context.Context) ([]domain.ContentItem, error) {
	return s.store.ListItems(ctx)
}

// GetItem retrieves a content item by ID.
func (s *ContentService) GetItem(ctx context.Context, id string) (*domain.ContentItem, error) {
	return s.store.GetItem(ctx, id)
}

// CreateItem validates and persists a new content item. The store assigns
// the ID and timestamps.
func (s *ContentService) CreateItem(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if item.Stage == "" {
		item.Stage = domain.StageIdea
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	itemID, err := s.store.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	created, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get created item: %w", err)
	}

	s.logger.Info("content item created",
		"item_id", itemID,
		"title", created.Title,
		"stage", created.Stage,
	)

	return created, nil
}

// UpdateItem validates and persists changes to an existing item. The
// store preserves the ID and creation timestamp.
func (s *ContentService) UpdateItem(ctx context.Context, id string, item *domain.ContentItem) (*domain.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.store.UpdateItem(ctx, id, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	updated, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get updated item: %w", err)
	}

	s.logger.Info("content item updated", "item_id", id, "stage", updated.Stage)

	return updated, nil
}

// DeleteItem removes a content item.
func (s *ContentService) DeleteItem(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.logger.Info("content item deleted", "item_id", id)

	return nil
}

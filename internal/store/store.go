// Package store defines the persistence contracts for the planner: the
// content and campaign collections, the settings table, and the interfaces
// the store uses to notify listeners and keep search in sync.
package store

import (
	"context"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// EmitterFunc adapts a plain function to EventEmitter.
type EmitterFunc func(event any)

// Emit implements EventEmitter.
func (f EmitterFunc) Emit(event any) { f(event) }

// FanoutEmitter forwards every event to each wrapped emitter in order.
// The store emits change events once; fan-out lets both the SSE manager
// and the planner's mirror refresh observe them.
type FanoutEmitter struct {
	emitters []EventEmitter
}

// NewFanoutEmitter creates an emitter broadcasting to all of emitters.
func NewFanoutEmitter(emitters ...EventEmitter) *FanoutEmitter {
	return &FanoutEmitter{emitters: emitters}
}

// Emit implements EventEmitter.
func (f *FanoutEmitter) Emit(event any) {
	for _, e := range f.emitters {
		e.Emit(event)
	}
}

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search implementation.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.ContentItem) error
	DeleteItem(ctx context.Context, itemID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexItem is a no-op.
func (NoopSearchIndexer) IndexItem(context.Context, *domain.ContentItem) error { return nil }

// DeleteItem is a no-op.
func (NoopSearchIndexer) DeleteItem(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// ContentStore is the persistence contract for content items.
// List returns items newest first. Create assigns the id and both
// timestamps; Update preserves id and created_at.
type ContentStore interface {
	ListItems(ctx context.Context) ([]domain.ContentItem, error)
	GetItem(ctx context.Context, id string) (*domain.ContentItem, error)
	CreateItem(ctx context.Context, item *domain.ContentItem) (string, error)
	UpdateItem(ctx context.Context, id string, item *domain.ContentItem) error
	DeleteItem(ctx context.Context, id string) error
}

// CampaignStore is the persistence contract for campaigns.
type CampaignStore interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *domain.Campaign) (string, error)
	UpdateCampaign(ctx context.Context, id string, campaign *domain.Campaign) error
	DeleteCampaign(ctx context.Context, id string) error
}

// SettingsStore is the persistence contract for key/value settings
// such as the brand voice document.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

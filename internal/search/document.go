// Package search provides full-text search over the planning collection
// using Bleve. Content items and campaigns share a single index with
// faceted filtering on stage and channel plus fuzzy matching on titles.
package search

import (
	"github.com/obi-coffee/tast-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeItem     DocType = "item"
	DocTypeCampaign DocType = "campaign"
)

// SearchDocument is the unified document structure for the Bleve index.
// Both searchable entities are indexed as SearchDocuments with type
// discrimination.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`   // Original entity ID (item_xxx, camp_xxx)
	Type DocType `json:"type"` // Discriminator for result grouping

	// Primary searchable text (item title or campaign name)
	Name string `json:"name"`

	// Item-specific fields (empty for campaigns)
	DraftCopy   string   `json:"draft_copy,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	ContentType string   `json:"content_type,omitempty"` // Theme, exact match
	Format      string   `json:"format,omitempty"`
	Stage       string   `json:"stage,omitempty"`
	Date        string   `json:"date,omitempty"` // YYYY-MM-DD, sorts as a string
	Channels    []string `json:"channels,omitempty"`
	CampaignID  string   `json:"campaign_id,omitempty"`

	// Campaign-specific fields
	KeyMessage string `json:"key_message,omitempty"`
	DropDate   string `json:"drop_date,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.DraftCopy != "" {
		m["draft_copy"] = d.DraftCopy
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	if d.ContentType != "" {
		m["content_type"] = d.ContentType
	}
	if d.Format != "" {
		m["format"] = d.Format
	}
	if d.Stage != "" {
		m["stage"] = d.Stage
	}
	if d.Date != "" {
		m["date"] = d.Date
	}
	if len(d.Channels) > 0 {
		m["channels"] = d.Channels
	}
	if d.CampaignID != "" {
		m["campaign_id"] = d.CampaignID
	}
	if d.KeyMessage != "" {
		m["key_message"] = d.KeyMessage
	}
	if d.DropDate != "" {
		m["drop_date"] = d.DropDate
	}

	return m
}

// ItemToSearchDocument converts a content item to a SearchDocument.
// Channels are flattened so primary and secondary match alike.
func ItemToSearchDocument(item *domain.ContentItem) *SearchDocument {
	return &SearchDocument{
		ID:          item.ID,
		Type:        DocTypeItem,
		Name:        item.Title,
		DraftCopy:   item.DraftCopy,
		Notes:       item.Notes,
		ContentType: item.Type,
		Format:      item.Format,
		Stage:       item.Stage,
		Date:        item.Date,
		Channels:    item.Channels.Flatten(),
		CampaignID:  item.CampaignID,
		CreatedAt:   item.CreatedAt.UnixMilli(),
		UpdatedAt:   item.UpdatedAt.UnixMilli(),
	}
}

// CampaignToSearchDocument converts a campaign to a SearchDocument.
func CampaignToSearchDocument(c *domain.Campaign) *SearchDocument {
	return &SearchDocument{
		ID:         c.ID,
		Type:       DocTypeCampaign,
		Name:       c.Name,
		KeyMessage: c.KeyMessage,
		DropDate:   c.DropDate,
		CreatedAt:  c.CreatedAt.UnixMilli(),
		UpdatedAt:  c.UpdatedAt.UnixMilli(),
	}
}

// Package sse implements Server-Sent Events for real-time planner updates and event broadcasting.
package sse

import (
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventContentCreated represents a content item creation event.
	EventContentCreated EventType = "content.created"
	// EventContentUpdated represents a content item update event.
	EventContentUpdated EventType = "content.updated"
	// EventContentDeleted represents a content item deletion event.
	EventContentDeleted EventType = "content.deleted"

	// EventCampaignCreated represents a campaign creation event.
	EventCampaignCreated EventType = "campaign.created"
	// EventCampaignUpdated represents a campaign update event.
	EventCampaignUpdated EventType = "campaign.updated"
	// EventCampaignDeleted represents a campaign deletion event.
	EventCampaignDeleted EventType = "campaign.deleted"

	// EventPlanApplied represents completion of a bulk plan apply,
	// including how many operations succeeded and failed.
	EventPlanApplied EventType = "plan.applied"

	// EventBrandVoiceUpdated represents a brand voice document change.
	EventBrandVoiceUpdated EventType = "settings.brand_voice_updated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ContentEventData is the data payload for content item events.
type ContentEventData struct {
	Item *domain.ContentItem `json:"item"`
}

// ContentDeletedEventData is the data payload for content delete events.
type ContentDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ItemID    string    `json:"item_id"`
}

// CampaignEventData is the data payload for campaign events.
type CampaignEventData struct {
	Campaign *domain.Campaign `json:"campaign"`
}

// CampaignDeletedEventData is the data payload for campaign delete events.
type CampaignDeletedEventData struct {
	DeletedAt  time.Time `json:"deleted_at"`
	CampaignID string    `json:"campaign_id"`
}

// PlanAppliedEventData is the data payload for plan apply events.
type PlanAppliedEventData struct {
	AppliedAt  time.Time `json:"applied_at"`
	Collection string    `json:"collection"` // "items" or "campaigns"
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Deleted    int       `json:"deleted"`
	Failed     int       `json:"failed"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewContentCreatedEvent creates a content.created event.
func NewContentCreatedEvent(item *domain.ContentItem) Event {
	return Event{
		Type:      EventContentCreated,
		Timestamp: time.Now(),
		Data:      ContentEventData{Item: item},
	}
}

// NewContentUpdatedEvent creates a content.updated event.
func NewContentUpdatedEvent(item *domain.ContentItem) Event {
	return Event{
		Type:      EventContentUpdated,
		Timestamp: time.Now(),
		Data:      ContentEventData{Item: item},
	}
}

// NewContentDeletedEvent creates a content.deleted event.
func NewContentDeletedEvent(itemID string, deletedAt time.Time) Event {
	return Event{
		Type:      EventContentDeleted,
		Timestamp: time.Now(),
		Data: ContentDeletedEventData{
			ItemID:    itemID,
			DeletedAt: deletedAt,
		},
	}
}

// NewCampaignCreatedEvent creates a campaign.created event.
func NewCampaignCreatedEvent(campaign *domain.Campaign) Event {
	return Event{
		Type:      EventCampaignCreated,
		Timestamp: time.Now(),
		Data:      CampaignEventData{Campaign: campaign},
	}
}

// NewCampaignUpdatedEvent creates a campaign.updated event.
func NewCampaignUpdatedEvent(campaign *domain.Campaign) Event {
	return Event{
		Type:      EventCampaignUpdated,
		Timestamp: time.Now(),
		Data:      CampaignEventData{Campaign: campaign},
	}
}

// NewCampaignDeletedEvent creates a campaign.deleted event.
func NewCampaignDeletedEvent(campaignID string, deletedAt time.Time) Event {
	return Event{
		Type:      EventCampaignDeleted,
		Timestamp: time.Now(),
		Data: CampaignDeletedEventData{
			CampaignID: campaignID,
			DeletedAt:  deletedAt,
		},
	}
}

// NewPlanAppliedEvent creates a plan.applied event.
func NewPlanAppliedEvent(collection string, created, updated, deleted, failed int) Event {
	return Event{
		Type:      EventPlanApplied,
		Timestamp: time.Now(),
		Data: PlanAppliedEventData{
			AppliedAt:  time.Now(),
			Collection: collection,
			Created:    created,
			Updated:    updated,
			Deleted:    deleted,
			Failed:     failed,
		},
	}
}

// NewBrandVoiceUpdatedEvent creates a settings.brand_voice_updated event.
func NewBrandVoiceUpdatedEvent() Event {
	return Event{
		Type:      EventBrandVoiceUpdated,
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}

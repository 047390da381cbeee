// Package domain contains the core entity types for the content planner:
// content items moving through a pipeline of stages, the campaigns that group
// them, and the enumerations (stages, channels, themes, formats) they draw from.
package domain

import (
	"slices"
	"time"
)

// Pipeline stages, in display order. Order matters only for progress
// computation; any stage can be reassigned to any other.
const (
	StageIdea         = "Idea"
	StageInCampaign   = "In Campaign"
	StageInProduction = "In Production"
	StageReady        = "Ready"
	StagePublished    = "Published"
)

// PipelineStages lists the stages in pipeline order.
var PipelineStages = []string{StageIdea, StageInCampaign, StageInProduction, StageReady, StagePublished}

// ChannelOptions lists the distribution channels an item can target.
var ChannelOptions = []string{"Instagram", "Email", "Website", "TikTok", "LinkedIn"}

// TypeOptions lists the content themes.
var TypeOptions = []string{
	"The Build",
	"The Problem",
	"Roaster Love",
	"Coffee Life",
	"Taste Story",
	"Waitlist",
	"Trade Show",
	"Beta Launch",
	"Community",
	"Launch",
	"Vol. 3 Tease",
	"Vol. 3 Reveal",
	"Vol. 3 Drop",
}

// FormatOptions lists the post formats.
var FormatOptions = []string{
	"Single Photo",
	"Carousel",
	"Graphic / Text",
	"Story",
	"Repost / UGC",
}

// Channels holds an item's distribution targets: a single lead channel plus
// any number of additional channels, which never include the primary.
type Channels struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
}

// NormalizeChannels converts a legacy flat channel list into the structured
// shape: the first element becomes primary, the rest secondary. Already
// structured values pass through unchanged, so the conversion is idempotent.
func NormalizeChannels(flat []string) Channels {
	if len(flat) == 0 {
		return Channels{Secondary: []string{}}
	}
	return Channels{Primary: flat[0], Secondary: slices.Clone(flat[1:])}
}

// Flatten returns the channels as a plain ordered list, primary first.
// Flattening a normalized legacy list reproduces the original list.
func (c Channels) Flatten() []string {
	if c.Primary == "" {
		return slices.Clone(c.Secondary)
	}
	out := make([]string, 0, 1+len(c.Secondary))
	out = append(out, c.Primary)
	out = append(out, c.Secondary...)
	return out
}

// Contains reports whether the channel appears as primary or secondary.
func (c Channels) Contains(channel string) bool {
	return c.Primary == channel || slices.Contains(c.Secondary, channel)
}

// ContentItem is one planned or published unit of content moving through
// the pipeline. ID and CreatedAt are assigned by the store and never sent
// back on update.
type ContentItem struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`     // One of TypeOptions
	Format     string    `json:"format"`   // One of FormatOptions, optional
	Stage      string    `json:"stage"`    // One of PipelineStages
	Date       string    `json:"date"`     // Scheduled calendar date (YYYY-MM-DD), optional
	CampaignID string    `json:"campaign_id"` // Optional; orphans are tolerated
	AssigneeID string    `json:"assignee_id"` // Optional
	Notes      string    `json:"notes"`
	DraftCopy  string    `json:"draft_copy"`
	Channels   Channels  `json:"channels"`
	ImageURLs  []string  `json:"image_urls"` // Ordered; first is the cover image
}

// IsPublished reports whether the item has reached the Published stage.
func (i *ContentItem) IsPublished() bool {
	return i.Stage == StagePublished
}

// InFlight reports whether the item is actively being worked
// (In Campaign, In Production, or Ready).
func (i *ContentItem) InFlight() bool {
	switch i.Stage {
	case StageInCampaign, StageInProduction, StageReady:
		return true
	}
	return false
}

// StageIndex returns the item's position in the pipeline, or -1 for an
// unknown stage.
func (i *ContentItem) StageIndex() int {
	return slices.Index(PipelineStages, i.Stage)
}

// ValidStage reports whether s is a known pipeline stage.
func ValidStage(s string) bool {
	return slices.Contains(PipelineStages, s)
}

// ValidChannel reports whether ch is a known channel.
func ValidChannel(ch string) bool {
	return slices.Contains(ChannelOptions, ch)
}

// ValidType reports whether t is a known content theme.
func ValidType(t string) bool {
	return slices.Contains(TypeOptions, t)
}

// ValidFormat reports whether f is a known post format.
func ValidFormat(f string) bool {
	return slices.Contains(FormatOptions, f)
}

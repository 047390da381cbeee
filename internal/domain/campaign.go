package domain

import "time"

// Campaign is a named grouping of content items with a key message, an
// optional drop date, and free-text strategy notes. Items reference campaigns
// by id; deleting a campaign never cascades to its items.
type Campaign struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	KeyMessage string    `json:"key_message"`
	DropDate   string    `json:"drop_date"` // YYYY-MM-DD, optional
	BigThink   string    `json:"big_think"` // Strategy notes
}

// LinkedItems returns the items referencing this campaign.
func (c *Campaign) LinkedItems(items []ContentItem) []ContentItem {
	var linked []ContentItem
	for _, item := range items {
		if item.CampaignID == c.ID {
			linked = append(linked, item)
		}
	}
	return linked
}

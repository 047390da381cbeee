package analytics

import (
	"slices"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// CampaignStats is the health of one campaign with linked items.
type CampaignStats struct {
	CampaignID     string  `json:"campaign_id"`
	Name           string  `json:"name"`
	Linked         int     `json:"linked"`
	Published      int     `json:"published"`
	PublishedRatio float64 `json:"published_ratio"`
}

// CampaignHealth computes linked/published counts per campaign. Campaigns
// with no linked items are omitted; output is ordered by linked count
// descending, ties keeping the input campaign order.
func CampaignHealth(items []domain.ContentItem, campaigns []domain.Campaign) []CampaignStats {
	stats := []CampaignStats{}
	for _, c := range campaigns {
		linked, published := 0, 0
		for _, item := range items {
			if item.CampaignID != c.ID {
				continue
			}
			linked++
			if item.IsPublished() {
				published++
			}
		}
		if linked == 0 {
			continue
		}
		stats = append(stats, CampaignStats{
			CampaignID:     c.ID,
			Name:           c.Name,
			Linked:         linked,
			Published:      published,
			PublishedRatio: float64(published) / float64(linked),
		})
	}

	slices.SortStableFunc(stats, func(a, b CampaignStats) int {
		return b.Linked - a.Linked
	})

	return stats
}

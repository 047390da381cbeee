package analytics

import (
	"slices"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// ChannelCount is one channel's share of the collection.
type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// TypeCount is one content theme's share of the collection.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// AssigneeCount is one team member's workload.
type AssigneeCount struct {
	AssigneeID string `json:"assignee_id"`
	Count      int    `json:"count"`
	Published  int    `json:"published"`
}

// DistributionByChannel counts items per channel. An item counts toward
// every channel it targets, primary and secondary alike, but never twice
// for the same channel. Zero-count channels are kept so the full channel
// set is always visible.
func DistributionByChannel(items []domain.ContentItem) []ChannelCount {
	counts := make([]ChannelCount, len(domain.ChannelOptions))
	for i, ch := range domain.ChannelOptions {
		counts[i].Channel = ch
	}

	for _, item := range items {
		for i, ch := range domain.ChannelOptions {
			if item.Channels.Contains(ch) {
				counts[i].Count++
			}
		}
	}

	return counts
}

// DistributionByType counts items per content theme, dropping zero-count
// themes and ordering by count descending. Ties keep the theme catalog order.
func DistributionByType(items []domain.ContentItem) []TypeCount {
	counts := []TypeCount{}
	for _, t := range domain.TypeOptions {
		n := 0
		for _, item := range items {
			if item.Type == t {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, TypeCount{Type: t, Count: n})
		}
	}

	slices.SortStableFunc(counts, func(a, b TypeCount) int {
		return b.Count - a.Count
	})

	return counts
}

// DistributionByAssignee counts items per assignee with a published
// sub-count, in first-appearance order. Unassigned items are excluded.
func DistributionByAssignee(items []domain.ContentItem) []AssigneeCount {
	order := []string{}
	byID := map[string]*AssigneeCount{}

	for _, item := range items {
		if item.AssigneeID == "" {
			continue
		}
		c, ok := byID[item.AssigneeID]
		if !ok {
			order = append(order, item.AssigneeID)
			c = &AssigneeCount{AssigneeID: item.AssigneeID}
			byID[item.AssigneeID] = c
		}
		c.Count++
		if item.IsPublished() {
			c.Published++
		}
	}

	counts := make([]AssigneeCount, 0, len(order))
	for _, id := range order {
		counts = append(counts, *byID[id])
	}
	return counts
}

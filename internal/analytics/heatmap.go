package analytics

import (
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// HeatmapDay is one cell of the publishing heatmap.
type HeatmapDay struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"` // 0 for empty days, otherwise 0.2..1.0
}

// Heatmap counts published items per exact calendar day over the trailing
// weeks*7 days ending on the reference date, oldest day first. Intensity is
// 0 for empty days and otherwise scaled linearly from 0.2 so a single post
// is still visible next to the busiest day in the window.
func Heatmap(items []domain.ContentItem, ref time.Time, weeks int) []HeatmapDay {
	if weeks < 1 {
		return []HeatmapDay{}
	}
	totalDays := weeks * 7

	dayCounts := map[string]int{}
	for _, item := range items {
		if item.Date != "" && item.IsPublished() {
			dayCounts[item.Date]++
		}
	}

	days := make([]HeatmapDay, 0, totalDays)
	maxCount := 1
	for i := totalDays - 1; i >= 0; i-- {
		key := dateKey(ref.AddDate(0, 0, -i))
		count := dayCounts[key]
		if count > maxCount {
			maxCount = count
		}
		days = append(days, HeatmapDay{Date: key, Count: count})
	}

	for i := range days {
		if days[i].Count > 0 {
			days[i].Intensity = 0.2 + (float64(days[i].Count)/float64(maxCount))*0.8
		}
	}

	return days
}

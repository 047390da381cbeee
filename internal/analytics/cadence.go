package analytics

import (
	"strings"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// MonthBucket is one month of cadence data.
type MonthBucket struct {
	Label     string `json:"label"` // Short month name, e.g. "Jun"
	Key       string `json:"key"`   // YYYY-MM
	Total     int    `json:"total"`
	Published int    `json:"published"`
}

// Cadence counts items per scheduled month for the trailing months window,
// including the reference month, oldest first. Published counts items that
// have reached the Published stage; the remainder of each bucket is planned
// work.
func Cadence(items []domain.ContentItem, ref time.Time, months int) []MonthBucket {
	if months < 1 {
		return []MonthBucket{}
	}

	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		buckets = append(buckets, MonthBucket{
			Label: m.Format("Jan"),
			Key:   monthKey(m),
		})
	}

	for _, item := range items {
		if item.Date == "" {
			continue
		}
		for bi := range buckets {
			if strings.HasPrefix(item.Date, buckets[bi].Key) {
				buckets[bi].Total++
				if item.IsPublished() {
					buckets[bi].Published++
				}
				break
			}
		}
	}

	return buckets
}

// Sparkline returns the monthly totals only, for compact trend display.
func Sparkline(items []domain.ContentItem, ref time.Time, months int) []int {
	buckets := Cadence(items, ref, months)
	totals := make([]int, len(buckets))
	for i, b := range buckets {
		totals[i] = b.Total
	}
	return totals
}

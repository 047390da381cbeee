// Package analytics computes read-only projections over the content
// collection: cadence, distributions, the publishing heatmap, campaign
// health, and schedule-health findings. Every function is pure given
// (items, campaigns, reference date) and degrades to empty or zero-valued
// results on empty input.
package analytics

import "time"

// dateKey formats a time as the calendar-date string used throughout the
// collection (YYYY-MM-DD).
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthKey formats a time as a calendar-month prefix (YYYY-MM).
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// Summary is the top-line pipeline snapshot.
type Summary struct {
	Total        int `json:"total"`
	Published    int `json:"published"`
	PublishedPct int `json:"published_pct"`
	InFlight     int `json:"in_flight"`  // In Campaign, In Production, or Ready
	ThisMonth    int `json:"this_month"` // Scheduled or published in the reference month
}

// Summarize computes the top-line stats for the reference date.
func Summarize(items []domain.ContentItem, ref time.Time) Summary {
	s := Summary{Total: len(items)}
	thisMonth := monthKey(ref)

	for _, item := range items {
		if item.IsPublished() {
			s.Published++
		}
		if item.InFlight() {
			s.InFlight++
		}
		if item.Date != "" && strings.HasPrefix(item.Date, thisMonth) {
			s.ThisMonth++
		}
	}

	if s.Total > 0 {
		s.PublishedPct = int(math.Round(float64(s.Published) / float64(s.Total) * 100))
	}

	return s
}

// IntentShare is one intent bucket's share of the collection against its
// planning target.
type IntentShare struct {
	Bucket    string `json:"bucket"`
	Count     int    `json:"count"`
	SharePct  int    `json:"share_pct"`
	TargetPct int    `json:"target_pct"`
}

// IntentMix computes the actual culture/brand/conversion split against the
// 70/20/10 target. Items with an unknown theme are excluded from the total.
func IntentMix(items []domain.ContentItem) []IntentShare {
	counts := map[string]int{}
	total := 0
	for _, item := range items {
		bucket := domain.IntentForType(item.Type)
		if bucket == "" {
			continue
		}
		counts[bucket]++
		total++
	}

	shares := make([]IntentShare, 0, len(domain.IntentBuckets))
	for _, bucket := range domain.IntentBuckets {
		share := IntentShare{
			Bucket:    bucket,
			Count:     counts[bucket],
			TargetPct: domain.IntentTargets[bucket],
		}
		if total > 0 {
			share.SharePct = int(math.Round(float64(share.Count) / float64(total) * 100))
		}
		shares = append(shares, share)
	}

	return shares
}

// PhaseCount is one rollout phase's scheduled workload.
type PhaseCount struct {
	Phase     domain.Phase `json:"phase"`
	Count     int          `json:"count"`
	Published int          `json:"published"`
}

// PhaseProgress counts scheduled items per rollout phase. Items without a
// date, or dated between phases, are not counted.
func PhaseProgress(items []domain.ContentItem) []PhaseCount {
	progress := make([]PhaseCount, len(domain.Phases))
	for i, p := range domain.Phases {
		progress[i].Phase = p
	}

	for _, item := range items {
		phase := domain.PhaseForDate(item.Date)
		if phase == nil {
			continue
		}
		for i := range progress {
			if progress[i].Phase.ID == phase.ID {
				progress[i].Count++
				if item.IsPublished() {
					progress[i].Published++
				}
				break
			}
		}
	}

	return progress
}

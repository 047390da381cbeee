package analytics

import (
	"fmt"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
)

// Severity levels for schedule-health findings.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
	SeverityOK     = "ok"
)

// Finding types.
const (
	FindingOverdue = "overdue"
	FindingStale   = "stale"
	FindingGap     = "gap"
	FindingChannel = "channel"
	FindingOK      = "ok"
)

// maxFindingItems caps how many offending items a finding lists; the rest
// are summarized by Overflow.
const maxFindingItems = 4

// ItemRef identifies an offending item within a finding.
type ItemRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Finding is one detected scheduling risk, or a single healthy marker when
// nothing is wrong.
type Finding struct {
	Type     string    `json:"type"`
	Severity string    `json:"severity"`
	Label    string    `json:"label"`
	Detail   string    `json:"detail"`
	Items    []ItemRef `json:"items"`
	Overflow int       `json:"overflow"` // Offending items beyond the listed ones
	GapStart int       `json:"gap_start,omitempty"` // Day offset from ref where the gap begins
	GapDays  int       `json:"gap_days,omitempty"`
}

// FindingOptions tunes the gap detector. Zero values fall back to the
// defaults: scan 14 days ahead, report gaps longer than 4 days, and treat
// Instagram as the priority channel.
type FindingOptions struct {
	PriorityChannel string
	ScanDays        int
	GapThreshold    int
}

func (o FindingOptions) withDefaults() FindingOptions {
	if o.PriorityChannel == "" {
		o.PriorityChannel = "Instagram"
	}
	if o.ScanDays == 0 {
		o.ScanDays = 14
	}
	if o.GapThreshold == 0 {
		o.GapThreshold = 4
	}
	return o
}

// newFinding builds a finding from the offending items, keeping the first
// few and counting the rest as overflow.
func newFinding(findingType, severity, label, detail string, offending []domain.ContentItem) Finding {
	f := Finding{
		Type:     findingType,
		Severity: severity,
		Label:    label,
		Detail:   detail,
		Items:    []ItemRef{},
	}
	for i, item := range offending {
		if i == maxFindingItems {
			f.Overflow = len(offending) - maxFindingItems
			break
		}
		f.Items = append(f.Items, ItemRef{ID: item.ID, Title: item.Title})
	}
	return f
}

// plural returns "s" for counts other than one.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Findings scans the collection for scheduling risk relative to the
// reference date. Checks run in fixed order: overdue items, stale
// unscheduled work, upcoming posting gaps, and priority-channel blind
// spots. When nothing fires, a single healthy finding is returned.
func Findings(items []domain.ContentItem, ref time.Time, opts FindingOptions) []Finding {
	opts = opts.withDefaults()
	today := dateKey(ref)
	findings := []Finding{}

	// An empty collection has nothing to warn about; gap and channel checks
	// would otherwise fire vacuously.
	if len(items) == 0 {
		return append(findings, newFinding(
			FindingOK, SeverityOK, "Pipeline looks healthy",
			"No gaps or overdue items detected",
			nil,
		))
	}

	// Overdue: scheduled strictly before today, not published.
	var overdue []domain.ContentItem
	for _, item := range items {
		if item.Date != "" && !item.IsPublished() && item.Date < today {
			overdue = append(overdue, item)
		}
	}
	if len(overdue) > 0 {
		findings = append(findings, newFinding(
			FindingOverdue, SeverityHigh, "Overdue posts",
			fmt.Sprintf("%d item%s past their scheduled date", len(overdue), plural(len(overdue))),
			overdue,
		))
	}

	// Stale: in production or ready with no date at all.
	var stale []domain.ContentItem
	for _, item := range items {
		if item.Date == "" && (item.Stage == domain.StageInProduction || item.Stage == domain.StageReady) {
			stale = append(stale, item)
		}
	}
	if len(stale) > 0 {
		findings = append(findings, newFinding(
			FindingStale, SeverityMedium, "Ready but unscheduled",
			fmt.Sprintf("%d item%s in Production/Ready with no publish date", len(stale), plural(len(stale))),
			stale,
		))
	}

	// Upcoming gap: longest run of empty days in the scan window. Ties in
	// run length keep the earliest run found.
	scheduled := map[string]bool{}
	for _, item := range items {
		if item.Date != "" {
			scheduled[item.Date] = true
		}
	}

	longestGap, gapStart := 0, 0
	currentGap, currentStart := 0, 0
	for i := 1; i <= opts.ScanDays; i++ {
		key := dateKey(ref.AddDate(0, 0, i))
		if scheduled[key] {
			currentGap = 0
			continue
		}
		if currentGap == 0 {
			currentStart = i
		}
		currentGap++
		if currentGap > longestGap {
			longestGap = currentGap
			gapStart = currentStart
		}
	}
	if longestGap > opts.GapThreshold {
		f := newFinding(
			FindingGap, SeverityMedium, "Posting gap ahead",
			fmt.Sprintf("%d-day gap with no scheduled content in the next %d days", longestGap, opts.ScanDays),
			nil,
		)
		f.GapStart = gapStart
		f.GapDays = longestGap
		findings = append(findings, f)
	}

	// Priority-channel blind spot, after flattening primary and secondary.
	hasPriority := false
	for _, item := range items {
		if item.Channels.Contains(opts.PriorityChannel) {
			hasPriority = true
			break
		}
	}
	if !hasPriority {
		findings = append(findings, newFinding(
			FindingChannel, SeverityLow,
			fmt.Sprintf("No %s content", opts.PriorityChannel),
			fmt.Sprintf("No posts tagged for %s", opts.PriorityChannel),
			nil,
		))
	}

	if len(findings) == 0 {
		findings = append(findings, newFinding(
			FindingOK, SeverityOK, "Pipeline looks healthy",
			"No gaps or overdue items detected",
			nil,
		))
	}

	return findings
}

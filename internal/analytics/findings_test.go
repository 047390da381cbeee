package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func instagram() domain.Channels {
	return domain.Channels{Primary: "Instagram", Secondary: []string{}}
}

func findingsOfType(findings []Finding, findingType string) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Type == findingType {
			out = append(out, f)
		}
	}
	return out
}

func TestFindings_EmptyCollectionIsHealthy(t *testing.T) {
	findings := Findings(nil, date(2025, time.June, 10), FindingOptions{})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityOK, findings[0].Severity)
	assert.Equal(t, FindingOK, findings[0].Type)
}

func TestFindings_OverdueItem(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Title: "Yesterday's reel", Date: "2025-06-01", Stage: domain.StageReady, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 2), FindingOptions{})

	overdue := findingsOfType(findings, FindingOverdue)
	require.Len(t, overdue, 1)
	assert.Equal(t, SeverityHigh, overdue[0].Severity)
	require.Len(t, overdue[0].Items, 1)
	assert.Equal(t, "item-1", overdue[0].Items[0].ID)
	assert.Equal(t, "1 item past their scheduled date", overdue[0].Detail)
}

func TestFindings_PublishedItemsAreNeverOverdue(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-01", Stage: domain.StagePublished, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 2), FindingOptions{})

	assert.Empty(t, findingsOfType(findings, FindingOverdue))
}

func TestFindings_TodayIsNotOverdue(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-02", Stage: domain.StageReady, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 2), FindingOptions{})

	assert.Empty(t, findingsOfType(findings, FindingOverdue))
}

func TestFindings_StaleUnscheduledWork(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Title: "Stuck in production", Stage: domain.StageInProduction, Channels: instagram()},
		{ID: "item-2", Title: "Ready, no date", Stage: domain.StageReady, Channels: instagram()},
		{ID: "item-3", Title: "Just an idea", Stage: domain.StageIdea, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	stale := findingsOfType(findings, FindingStale)
	require.Len(t, stale, 1)
	assert.Equal(t, SeverityMedium, stale[0].Severity)
	assert.Len(t, stale[0].Items, 2)
	assert.Equal(t, "2 items in Production/Ready with no publish date", stale[0].Detail)
}

func TestFindings_UpcomingGapAcrossWholeWindow(t *testing.T) {
	// Both scheduled dates fall beyond the 14-day horizon, so every scanned
	// day is empty.
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-25", Stage: domain.StageReady, Channels: instagram()},
		{ID: "item-2", Date: "2025-06-28", Stage: domain.StageReady, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	gaps := findingsOfType(findings, FindingGap)
	require.Len(t, gaps, 1)
	assert.Equal(t, SeverityMedium, gaps[0].Severity)
	assert.Equal(t, 14, gaps[0].GapDays)
	assert.Equal(t, 1, gaps[0].GapStart)
}

func TestFindings_GapAtThresholdIsNotReported(t *testing.T) {
	// Scheduled every 5th day: the longest empty run is exactly 4 days,
	// which does not exceed the threshold.
	items := []domain.ContentItem{}
	for _, d := range []string{"2025-06-15", "2025-06-20", "2025-06-25"} {
		items = append(items, domain.ContentItem{Date: d, Stage: domain.StageReady, Channels: instagram()})
	}
	// Cover the first days too.
	items = append(items, domain.ContentItem{Date: "2025-06-11", Stage: domain.StageReady, Channels: instagram()})

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	assert.Empty(t, findingsOfType(findings, FindingGap))
}

func TestFindings_EarliestLongestRunWinsTies(t *testing.T) {
	// Two 5-day empty runs: days 1-5 and days 7-11. The earliest wins.
	items := []domain.ContentItem{
		{Date: "2025-06-16", Stage: domain.StageReady, Channels: instagram()}, // Day 6.
		{Date: "2025-06-22", Stage: domain.StageReady, Channels: instagram()}, // Day 12.
		{Date: "2025-06-23", Stage: domain.StageReady, Channels: instagram()}, // Day 13.
		{Date: "2025-06-24", Stage: domain.StageReady, Channels: instagram()}, // Day 14.
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	gaps := findingsOfType(findings, FindingGap)
	require.Len(t, gaps, 1)
	assert.Equal(t, 5, gaps[0].GapDays)
	assert.Equal(t, 1, gaps[0].GapStart)
}

func TestFindings_PriorityChannelBlindSpot(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-11", Stage: domain.StageReady,
			Channels: domain.Channels{Primary: "Email", Secondary: []string{"Website"}}},
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{GapThreshold: 20})

	blind := findingsOfType(findings, FindingChannel)
	require.Len(t, blind, 1)
	assert.Equal(t, SeverityLow, blind[0].Severity)
	assert.Equal(t, "No Instagram content", blind[0].Label)
}

func TestFindings_SecondaryChannelSatisfiesPriority(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-11", Stage: domain.StageReady,
			Channels: domain.Channels{Primary: "Email", Secondary: []string{"Instagram"}}},
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{GapThreshold: 20})

	assert.Empty(t, findingsOfType(findings, FindingChannel))
}

func TestFindings_ConfigurablePriorityChannel(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "item-1", Date: "2025-06-11", Stage: domain.StageReady, Channels: instagram()},
	}

	findings := Findings(items, date(2025, time.June, 10),
		FindingOptions{PriorityChannel: "LinkedIn", GapThreshold: 20})

	blind := findingsOfType(findings, FindingChannel)
	require.Len(t, blind, 1)
	assert.Equal(t, "No LinkedIn content", blind[0].Label)
}

func TestFindings_HealthyPipeline(t *testing.T) {
	// Dense coverage of the scan window, everything scheduled ahead,
	// Instagram present.
	items := []domain.ContentItem{}
	for i := 1; i <= 14; i++ {
		items = append(items, domain.ContentItem{
			ID:       fmt.Sprintf("item-%d", i),
			Date:     date(2025, time.June, 10+i).Format("2006-01-02"),
			Stage:    domain.StageReady,
			Channels: instagram(),
		})
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityOK, findings[0].Severity)
}

func TestFindings_ListsAtMostFourItemsWithOverflow(t *testing.T) {
	items := []domain.ContentItem{}
	for i := 1; i <= 6; i++ {
		items = append(items, domain.ContentItem{
			ID:       fmt.Sprintf("item-%d", i),
			Title:    fmt.Sprintf("Overdue %d", i),
			Date:     "2025-06-01",
			Stage:    domain.StageReady,
			Channels: instagram(),
		})
	}

	findings := Findings(items, date(2025, time.June, 10), FindingOptions{})

	overdue := findingsOfType(findings, FindingOverdue)
	require.Len(t, overdue, 1)
	assert.Len(t, overdue[0].Items, 4)
	assert.Equal(t, 2, overdue[0].Overflow)
	assert.Equal(t, "6 items past their scheduled date", overdue[0].Detail)
}

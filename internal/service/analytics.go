package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/obi-coffee/tast-server/internal/analytics"
	"github.com/obi-coffee/tast-server/internal/config"
	"github.com/obi-coffee/tast-server/internal/store"
)

// AnalyticsService computes read-only projections over the content and
// campaign collections. The projections themselves are pure functions of
// (items, campaigns, reference date); this service only fetches the
// collections and applies the configured windows.
type AnalyticsService struct {
	items     store.ContentStore
	campaigns store.CampaignStore
	cfg       config.PlannerConfig
	logger    *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	items store.ContentStore,
	campaigns store.CampaignStore,
	cfg config.PlannerConfig,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		items:     items,
		campaigns: campaigns,
		cfg:       cfg,
		logger:    logger,
	}
}

// Cadence returns the trailing monthly production series ending at ref.
// A months value of zero uses the configured default.
func (s *AnalyticsService) Cadence(ctx context.Context, ref time.Time, months int) ([]analytics.MonthBucket, error) {
	if months <= 0 {
		months = s.cfg.CadenceMonths
	}
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.Cadence(items, ref, months), nil
}

// Sparkline returns the monthly totals of the cadence series.
func (s *AnalyticsService) Sparkline(ctx context.Context, ref time.Time, months int) ([]int, error) {
	if months <= 0 {
		months = s.cfg.CadenceMonths
	}
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.Sparkline(items, ref, months), nil
}

// ChannelDistribution counts items per channel after flattening primary
// and secondary memberships. Every channel appears, zero counts included.
func (s *AnalyticsService) ChannelDistribution(ctx context.Context) ([]analytics.ChannelCount, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.DistributionByChannel(items), nil
}

// TypeDistribution counts items per theme, busiest first, dropping
// zero-count themes.
func (s *AnalyticsService) TypeDistribution(ctx context.Context) ([]analytics.TypeCount, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.DistributionByType(items), nil
}

// AssigneeDistribution counts items per assignee in first-appearance order.
func (s *AnalyticsService) AssigneeDistribution(ctx context.Context) ([]analytics.AssigneeCount, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.DistributionByAssignee(items), nil
}

// Heatmap returns the publishing-activity grid for the configured trailing
// window ending at ref. A weeks value of zero uses the configured default.
func (s *AnalyticsService) Heatmap(ctx context.Context, ref time.Time, weeks int) ([]analytics.HeatmapDay, error) {
	if weeks <= 0 {
		weeks = s.cfg.HeatmapWeeks
	}
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.Heatmap(items, ref, weeks), nil
}

// CampaignHealth reports linked and published counts per campaign with at
// least one linked item.
func (s *AnalyticsService) CampaignHealth(ctx context.Context) ([]analytics.CampaignStats, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return analytics.CampaignHealth(items, campaigns), nil
}

// Findings runs the schedule-health detector relative to ref with the
// configured priority channel and scan window.
func (s *AnalyticsService) Findings(ctx context.Context, ref time.Time) ([]analytics.Finding, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.Findings(items, ref, analytics.FindingOptions{
		PriorityChannel: s.cfg.PriorityChannel,
		ScanDays:        s.cfg.GapScanDays,
	}), nil
}

// Summary returns the top-line pipeline stats for ref.
func (s *AnalyticsService) Summary(ctx context.Context, ref time.Time) (*analytics.Summary, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	summary := analytics.Summarize(items, ref)
	return &summary, nil
}

// IntentMix returns the culture/brand/conversion split against targets.
func (s *AnalyticsService) IntentMix(ctx context.Context) ([]analytics.IntentShare, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.IntentMix(items), nil
}

// PhaseProgress returns scheduled workload per rollout phase.
func (s *AnalyticsService) PhaseProgress(ctx context.Context) ([]analytics.PhaseCount, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return analytics.PhaseProgress(items), nil
}

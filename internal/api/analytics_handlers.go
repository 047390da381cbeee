package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/analytics"
)

func (s *Server) registerAnalyticsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/summary",
		Summary:     "Pipeline summary",
		Description: "Top-line totals: published, in flight, scheduled this month",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsCadence",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/cadence",
		Summary:     "Monthly production cadence",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsCadence)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsSparkline",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/sparkline",
		Summary:     "Monthly totals as a sparkline series",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsSparkline)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsChannels",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/distribution/channels",
		Summary:     "Items per channel",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsChannels)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsTypes",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/distribution/types",
		Summary:     "Items per content theme",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsTypes)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsAssignees",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/distribution/assignees",
		Summary:     "Workload per assignee",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsAssignees)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsHeatmap",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/heatmap",
		Summary:     "Publishing activity heatmap",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsHeatmap)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsCampaigns",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/campaigns",
		Summary:     "Campaign health",
		Description: "Linked and published counts per campaign with linked items",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsCampaigns)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsFindings",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/findings",
		Summary:     "Schedule health findings",
		Description: "Overdue items, stale pipeline work, schedule gaps, and channel blind spots",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsFindings)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsIntentMix",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/intent-mix",
		Summary:     "Intent mix against targets",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsIntentMix)

	huma.Register(s.api, huma.Operation{
		OperationID: "analyticsPhases",
		Method:      http.MethodGet,
		Path:        "/api/v1/analytics/phases",
		Summary:     "Rollout phase progress",
		Tags:        []string{"Analytics"},
	}, s.handleAnalyticsPhases)
}

// === DTOs ===

// RefInput carries the optional reference date shared by date-relative
// analytics reads.
type RefInput struct {
	Ref string `query:"ref" doc:"Reference date (YYYY-MM-DD, default today)"`
}

// resolveRef parses the reference date, falling back to the current UTC day.
func resolveRef(ref string) time.Time {
	if ref != "" {
		if t, err := time.Parse("2006-01-02", ref); err == nil {
			return t
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CadenceInput carries cadence window parameters.
type CadenceInput struct {
	Ref    string `query:"ref" doc:"Reference date (YYYY-MM-DD, default today)"`
	Months int    `query:"months" doc:"Trailing months including the reference month; zero uses the configured default"`
}

// HeatmapInput carries heatmap window parameters.
type HeatmapInput struct {
	Ref   string `query:"ref" doc:"Reference date (YYYY-MM-DD, default today)"`
	Weeks int    `query:"weeks" doc:"Trailing weeks (default from configuration)"`
}

// SummaryOutput wraps the pipeline summary for Huma.
type SummaryOutput struct {
	Body analytics.Summary
}

// CadenceOutput wraps the cadence series for Huma.
type CadenceOutput struct {
	Body struct {
		Months []analytics.MonthBucket `json:"months" doc:"Oldest month first"`
	}
}

// SparklineOutput wraps the sparkline series for Huma.
type SparklineOutput struct {
	Body struct {
		Series []int `json:"series" doc:"Monthly totals, oldest first"`
	}
}

// ChannelsOutput wraps the channel distribution for Huma.
type ChannelsOutput struct {
	Body struct {
		Channels []analytics.ChannelCount `json:"channels"`
	}
}

// TypesOutput wraps the theme distribution for Huma.
type TypesOutput struct {
	Body struct {
		Types []analytics.TypeCount `json:"types" doc:"Busiest theme first"`
	}
}

// AssigneesOutput wraps the assignee distribution for Huma.
type AssigneesOutput struct {
	Body struct {
		Assignees []analytics.AssigneeCount `json:"assignees"`
	}
}

// HeatmapOutput wraps the heatmap grid for Huma.
type HeatmapOutput struct {
	Body struct {
		Days []analytics.HeatmapDay `json:"days" doc:"Oldest day first"`
	}
}

// CampaignHealthOutput wraps campaign stats for Huma.
type CampaignHealthOutput struct {
	Body struct {
		Campaigns []analytics.CampaignStats `json:"campaigns" doc:"Most linked items first"`
	}
}

// FindingsOutput wraps schedule findings for Huma.
type FindingsOutput struct {
	Body struct {
		Findings []analytics.Finding `json:"findings"`
	}
}

// IntentMixOutput wraps the intent mix for Huma.
type IntentMixOutput struct {
	Body struct {
		Mix []analytics.IntentShare `json:"mix"`
	}
}

// PhasesOutput wraps phase progress for Huma.
type PhasesOutput struct {
	Body struct {
		Phases []analytics.PhaseCount `json:"phases"`
	}
}

// === Handlers ===

func (s *Server) handleAnalyticsSummary(ctx context.Context, input *RefInput) (*SummaryOutput, error) {
	summary, err := s.services.Analytics.Summary(ctx, resolveRef(input.Ref))
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: *summary}, nil
}

func (s *Server) handleAnalyticsCadence(ctx context.Context, input *CadenceInput) (*CadenceOutput, error) {
	// Zero months falls through to the configured window.
	buckets, err := s.services.Analytics.Cadence(ctx, resolveRef(input.Ref), input.Months)
	if err != nil {
		return nil, err
	}

	out := &CadenceOutput{}
	out.Body.Months = buckets
	return out, nil
}

func (s *Server) handleAnalyticsSparkline(ctx context.Context, input *CadenceInput) (*SparklineOutput, error) {
	series, err := s.services.Analytics.Sparkline(ctx, resolveRef(input.Ref), input.Months)
	if err != nil {
		return nil, err
	}

	out := &SparklineOutput{}
	out.Body.Series = series
	return out, nil
}

func (s *Server) handleAnalyticsChannels(ctx context.Context, _ *struct{}) (*ChannelsOutput, error) {
	channels, err := s.services.Analytics.ChannelDistribution(ctx)
	if err != nil {
		return nil, err
	}

	out := &ChannelsOutput{}
	out.Body.Channels = channels
	return out, nil
}

func (s *Server) handleAnalyticsTypes(ctx context.Context, _ *struct{}) (*TypesOutput, error) {
	types, err := s.services.Analytics.TypeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	out := &TypesOutput{}
	out.Body.Types = types
	return out, nil
}

func (s *Server) handleAnalyticsAssignees(ctx context.Context, _ *struct{}) (*AssigneesOutput, error) {
	assignees, err := s.services.Analytics.AssigneeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	out := &AssigneesOutput{}
	out.Body.Assignees = assignees
	return out, nil
}

func (s *Server) handleAnalyticsHeatmap(ctx context.Context, input *HeatmapInput) (*HeatmapOutput, error) {
	days, err := s.services.Analytics.Heatmap(ctx, resolveRef(input.Ref), input.Weeks)
	if err != nil {
		return nil, err
	}

	out := &HeatmapOutput{}
	out.Body.Days = days
	return out, nil
}

func (s *Server) handleAnalyticsCampaigns(ctx context.Context, _ *struct{}) (*CampaignHealthOutput, error) {
	stats, err := s.services.Analytics.CampaignHealth(ctx)
	if err != nil {
		return nil, err
	}

	out := &CampaignHealthOutput{}
	out.Body.Campaigns = stats
	return out, nil
}

func (s *Server) handleAnalyticsFindings(ctx context.Context, input *RefInput) (*FindingsOutput, error) {
	findings, err := s.services.Analytics.Findings(ctx, resolveRef(input.Ref))
	if err != nil {
		return nil, err
	}

	out := &FindingsOutput{}
	out.Body.Findings = findings
	return out, nil
}

func (s *Server) handleAnalyticsIntentMix(ctx context.Context, _ *struct{}) (*IntentMixOutput, error) {
	mix, err := s.services.Analytics.IntentMix(ctx)
	if err != nil {
		return nil, err
	}

	out := &IntentMixOutput{}
	out.Body.Mix = mix
	return out, nil
}

func (s *Server) handleAnalyticsPhases(ctx context.Context, _ *struct{}) (*PhasesOutput, error) {
	phases, err := s.services.Analytics.PhaseProgress(ctx)
	if err != nil {
		return nil, err
	}

	out := &PhasesOutput{}
	out.Body.Phases = phases
	return out, nil
}

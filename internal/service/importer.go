package service

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/errors"
)

// PlanFile is the drop-in import format: a partial plan whose items and
// campaigns are merged into the current collections. Entries without an id
// are created; entries with a known id replace the stored version.
type PlanFile struct {
	Items     []domain.ContentItem `json:"items"`
	Campaigns []domain.Campaign    `json:"campaigns"`
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	BatchID   string       `json:"batch_id"`
	Items     *ApplyResult `json:"items,omitempty"`
	Campaigns *ApplyResult `json:"campaigns,omitempty"`
}

// ImportService merges dropped plan files into the collections through the
// planner, so imports follow the same diff-and-reconcile path as edits.
type ImportService struct {
	planner *PlannerService
	logger  *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(planner *PlannerService, logger *slog.Logger) *ImportService {
	return &ImportService{
		planner: planner,
		logger:  logger,
	}
}

// ImportFile reads and imports one plan file.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*ImportSummary, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Path comes from the watched import directory
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var plan PlanFile
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, errors.Validation("plan file is not valid JSON").WithCause(err)
	}

	return s.Import(ctx, &plan)
}

// Import merges a plan into the current collections. Campaigns are applied
// first so imported items can reference a campaign from the same file.
func (s *ImportService) Import(ctx context.Context, plan *PlanFile) (*ImportSummary, error) {
	if len(plan.Items) == 0 && len(plan.Campaigns) == 0 {
		return nil, errors.Validation("plan file contains no items or campaigns")
	}

	summary := &ImportSummary{BatchID: uuid.NewString()}

	logger := s.logger.With("batch_id", summary.BatchID)
	logger.Info("importing plan",
		"items", len(plan.Items),
		"campaigns", len(plan.Campaigns),
	)

	if len(plan.Campaigns) > 0 {
		current, err := s.planner.Campaigns(ctx)
		if err != nil {
			return nil, fmt.Errorf("read campaigns: %w", err)
		}

		_, result, err := s.planner.ApplyCampaigns(ctx, mergeCampaigns(current, plan.Campaigns))
		if err != nil {
			return nil, fmt.Errorf("apply campaigns: %w", err)
		}
		summary.Campaigns = result
	}

	if len(plan.Items) > 0 {
		current, err := s.planner.Items(ctx)
		if err != nil {
			return nil, fmt.Errorf("read items: %w", err)
		}

		_, result, err := s.planner.ApplyItems(ctx, mergeItems(current, plan.Items))
		if err != nil {
			return nil, fmt.Errorf("apply items: %w", err)
		}
		summary.Items = result
	}

	logger.Info("plan imported")

	return summary, nil
}

// mergeItems overlays incoming items on the current collection by id.
// Unknown or missing ids append; known ids replace in place.
func mergeItems(current, incoming []domain.ContentItem) []domain.ContentItem {
	position := make(map[string]int, len(current))
	for i, item := range current {
		position[item.ID] = i
	}

	merged := make([]domain.ContentItem, len(current))
	copy(merged, current)

	for _, item := range incoming {
		if i, ok := position[item.ID]; ok && item.ID != "" {
			// Keep store-managed fields from the stored version.
			item.CreatedAt = merged[i].CreatedAt
			item.UpdatedAt = merged[i].UpdatedAt
			merged[i] = item
			continue
		}
		merged = append(merged, item)
	}

	return merged
}

// mergeCampaigns overlays incoming campaigns on the current collection by id.
func mergeCampaigns(current, incoming []domain.Campaign) []domain.Campaign {
	position := make(map[string]int, len(current))
	for i, campaign := range current {
		position[campaign.ID] = i
	}

	merged := make([]domain.Campaign, len(current))
	copy(merged, current)

	for _, campaign := range incoming {
		if i, ok := position[campaign.ID]; ok && campaign.ID != "" {
			campaign.CreatedAt = merged[i].CreatedAt
			campaign.UpdatedAt = merged[i].UpdatedAt
			merged[i] = campaign
			continue
		}
		merged = append(merged, campaign)
	}

	return merged
}

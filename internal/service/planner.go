package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/obi-coffee/tast-server/internal/diff"
	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/mirror"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store"
)

// OpFailure records one failed store operation within a plan apply.
// The batch continues past failures; nothing is rolled back.
type OpFailure struct {
	Op    string `json:"op"` // "create", "update", or "delete"
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// ApplyResult summarizes one plan apply: how many operations of each kind
// were attempted and which of them failed.
type ApplyResult struct {
	Created  int         `json:"created"`
	Updated  int         `json:"updated"`
	Deleted  int         `json:"deleted"`
	Failures []OpFailure `json:"failures,omitempty"`
}

// Succeeded reports how many operations completed.
func (r *ApplyResult) Succeeded() int {
	return r.Created + r.Updated + r.Deleted - len(r.Failures)
}

// PlannerService reconciles caller-proposed collection snapshots against
// the authoritative store. It diffs the proposal against the local mirror,
// issues the minimal create/update/delete set, then refetches the
// authoritative collection into the mirror. The store is the source of
// truth throughout; the mirror is only ever written from a refetch.
type PlannerService struct {
	items          store.ContentStore
	campaigns      store.CampaignStore
	itemMirror     *mirror.Collection[domain.ContentItem]
	campaignMirror *mirror.Collection[domain.Campaign]
	emitter        store.EventEmitter
	logger         *slog.Logger
}

// NewPlannerService creates a new planner service.
func NewPlannerService(
	items store.ContentStore,
	campaigns store.CampaignStore,
	mirrorStore *mirror.Store,
	emitter store.EventEmitter,
	logger *slog.Logger,
) *PlannerService {
	return &PlannerService{
		items:          items,
		campaigns:      campaigns,
		itemMirror:     mirror.NewCollection[domain.ContentItem](mirrorStore, "items:"),
		campaignMirror: mirror.NewCollection[domain.Campaign](mirrorStore, "campaigns:"),
		emitter:        emitter,
		logger:         logger,
	}
}

// Items returns the mirrored content collection in authoritative order.
func (s *PlannerService) Items(ctx context.Context) ([]domain.ContentItem, error) {
	return s.itemMirror.All(ctx)
}

// Campaigns returns the mirrored campaign collection in authoritative order.
func (s *PlannerService) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.campaignMirror.All(ctx)
}

// RefreshItems refetches the authoritative content collection into the
// mirror. Called at startup and whenever a change notification arrives.
func (s *PlannerService) RefreshItems(ctx context.Context) ([]domain.ContentItem, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if err := s.itemMirror.ReplaceAll(ctx, items); err != nil {
		return nil, fmt.Errorf("mirror items: %w", err)
	}
	return items, nil
}

// RefreshCampaigns refetches the authoritative campaign collection into
// the mirror.
func (s *PlannerService) RefreshCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	if err := s.campaignMirror.ReplaceAll(ctx, campaigns); err != nil {
		return nil, fmt.Errorf("mirror campaigns: %w", err)
	}
	return campaigns, nil
}

// NotifyStoreChange refetches the mirrored collection a change event
// belongs to. Wired as a store emitter fan-out target, it keeps the
// mirror current when writes bypass the planner (direct CRUD, another
// client), so a resubmitted authoritative snapshot still diffs empty.
// Refetching is synchronous; the store emits after commit, so the read
// here always sees the new row.
func (s *PlannerService) NotifyStoreChange(event any) {
	evt, ok := event.(sse.Event)
	if !ok {
		return
	}

	ctx := context.Background()
	switch {
	case strings.HasPrefix(string(evt.Type), "content."):
		if _, err := s.RefreshItems(ctx); err != nil {
			s.logger.Warn("mirror refresh after content change failed", "error", err)
		}
	case strings.HasPrefix(string(evt.Type), "campaign."):
		if _, err := s.RefreshCampaigns(ctx); err != nil {
			s.logger.Warn("mirror refresh after campaign change failed", "error", err)
		}
	}
}

// ApplyItems converges the store toward the proposed content collection.
// The proposal is diffed against the mirror; unchanged elements produce no
// store call at all, so applying an identical snapshot is a no-op. Deletes
// run first, then updates, then creates. Individual operation failures are
// collected and the batch continues; the refreshed authoritative collection
// is returned alongside the per-operation outcome.
func (s *PlannerService) ApplyItems(ctx context.Context, next []domain.ContentItem) ([]domain.ContentItem, *ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Reject the whole batch before touching the store.
	for i := range next {
		if err := validateItem(&next[i]); err != nil {
			return nil, nil, err
		}
	}

	current, err := s.itemMirror.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read mirror: %w", err)
	}

	d := diff.Compute(current, next, func(item domain.ContentItem) string { return item.ID })
	if d.Empty() {
		return current, &ApplyResult{}, nil
	}

	result := &ApplyResult{
		Created: len(d.Created),
		Updated: len(d.Updated),
		Deleted: len(d.Deleted),
	}

	for _, id := range d.Deleted {
		if err := s.items.DeleteItem(ctx, id); err != nil {
			s.logger.Warn("plan delete failed", "item_id", id, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "delete", ID: id, Error: err.Error()})
		}
	}

	for i := range d.Updated {
		item := d.Updated[i]
		if err := s.items.UpdateItem(ctx, item.ID, &item); err != nil {
			s.logger.Warn("plan update failed", "item_id", item.ID, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "update", ID: item.ID, Error: err.Error()})
		}
	}

	for i := range d.Created {
		item := d.Created[i]
		// The store assigns a fresh ID; any client-proposed one is dropped.
		if _, err := s.items.CreateItem(ctx, &item); err != nil {
			s.logger.Warn("plan create failed", "title", item.Title, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "create", Error: err.Error()})
		}
	}

	// Refetch rather than trust the optimistic proposal; other clients may
	// have written concurrently. On refetch failure the mirror stays stale
	// until the next successful refresh.
	items, err := s.RefreshItems(ctx)
	if err != nil {
		return nil, result, err
	}

	s.emitter.Emit(sse.NewPlanAppliedEvent("items",
		result.Created, result.Updated, result.Deleted, len(result.Failures)))

	s.logger.Info("content plan applied",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"failed", len(result.Failures),
	)

	return items, result, nil
}

// ApplyCampaigns converges the store toward the proposed campaign
// collection. Same algorithm as ApplyItems.
func (s *PlannerService) ApplyCampaigns(ctx context.Context, next []domain.Campaign) ([]domain.Campaign, *ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for i := range next {
		if err := validateCampaign(&next[i]); err != nil {
			return nil, nil, err
		}
	}

	current, err := s.campaignMirror.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read mirror: %w", err)
	}

	d := diff.Compute(current, next, func(c domain.Campaign) string { return c.ID })
	if d.Empty() {
		return current, &ApplyResult{}, nil
	}

	result := &ApplyResult{
		Created: len(d.Created),
		Updated: len(d.Updated),
		Deleted: len(d.Deleted),
	}

	for _, id := range d.Deleted {
		if err := s.campaigns.DeleteCampaign(ctx, id); err != nil {
			s.logger.Warn("plan delete failed", "campaign_id", id, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "delete", ID: id, Error: err.Error()})
		}
	}

	for i := range d.Updated {
		campaign := d.Updated[i]
		if err := s.campaigns.UpdateCampaign(ctx, campaign.ID, &campaign); err != nil {
			s.logger.Warn("plan update failed", "campaign_id", campaign.ID, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "update", ID: campaign.ID, Error: err.Error()})
		}
	}

	for i := range d.Created {
		campaign := d.Created[i]
		if _, err := s.campaigns.CreateCampaign(ctx, &campaign); err != nil {
			s.logger.Warn("plan create failed", "name", campaign.Name, "error", err)
			result.Failures = append(result.Failures, OpFailure{Op: "create", Error: err.Error()})
		}
	}

	campaigns, err := s.RefreshCampaigns(ctx)
	if err != nil {
		return nil, result, err
	}

	s.emitter.Emit(sse.NewPlanAppliedEvent("campaigns",
		result.Created, result.Updated, result.Deleted, len(result.Failures)))

	s.logger.Info("campaign plan applied",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"failed", len(result.Failures),
	)

	return campaigns, result, nil
}

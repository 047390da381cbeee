package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/domain"
	domainerrors "github.com/obi-coffee/tast-server/internal/errors"
	"github.com/obi-coffee/tast-server/internal/store"
	"github.com/obi-coffee/tast-server/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tast.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestContentService_CreateItem(t *testing.T) {
	svc := NewContentService(newTestStore(t), testLogger())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &domain.ContentItem{
		Title:    "Roastery Tour Reel",
		Type:     "The Build",
		Format:   "Story",
		Channels: domain.Channels{Primary: "Instagram", Secondary: []string{"Email"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StageIdea, created.Stage) // Stage defaults when omitted
	assert.False(t, created.CreatedAt.IsZero())
}

func TestContentService_CreateItem_Validation(t *testing.T) {
	svc := NewContentService(newTestStore(t), testLogger())
	ctx := context.Background()

	cases := []struct {
		name string
		item domain.ContentItem
	}{
		{"missing title", domain.ContentItem{}},
		{"unknown stage", domain.ContentItem{Title: "x", Stage: "Shipped"}},
		{"unknown type", domain.ContentItem{Title: "x", Type: "Hot Takes"}},
		{"unknown format", domain.ContentItem{Title: "x", Format: "Podcast"}},
		{"unknown channel", domain.ContentItem{Title: "x",
			Channels: domain.Channels{Primary: "Myspace"}}},
		{"duplicate channel", domain.ContentItem{Title: "x",
			Channels: domain.Channels{Primary: "Email", Secondary: []string{"Email"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := tc.item
			_, err := svc.CreateItem(ctx, &item)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestContentService_UpdateItem(t *testing.T) {
	svc := NewContentService(newTestStore(t), testLogger())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &domain.ContentItem{Title: "Draft"})
	require.NoError(t, err)

	created.Stage = domain.StagePublished
	created.Date = "2026-03-10"

	updated, err := svc.UpdateItem(ctx, created.ID, created)
	require.NoError(t, err)

	assert.Equal(t, domain.StagePublished, updated.Stage)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestContentService_UpdateItem_NotFound(t *testing.T) {
	svc := NewContentService(newTestStore(t), testLogger())

	_, err := svc.UpdateItem(context.Background(), "item-missing", &domain.ContentItem{Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestContentService_DeleteItem(t *testing.T) {
	svc := NewContentService(newTestStore(t), testLogger())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &domain.ContentItem{Title: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, created.ID))

	_, err = svc.GetItem(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCampaignService_GetCampaignItems(t *testing.T) {
	db := newTestStore(t)
	content := NewContentService(db, testLogger())
	campaigns := NewCampaignService(db, db, testLogger())
	ctx := context.Background()

	campaign, err := campaigns.CreateCampaign(ctx, &domain.Campaign{Name: "Vol. 3 Launch"})
	require.NoError(t, err)

	_, err = content.CreateItem(ctx, &domain.ContentItem{Title: "Linked", CampaignID: campaign.ID})
	require.NoError(t, err)
	_, err = content.CreateItem(ctx, &domain.ContentItem{Title: "Unlinked"})
	require.NoError(t, err)

	linked, err := campaigns.GetCampaignItems(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "Linked", linked[0].Title)
}

func TestSettingsService_BrandVoice(t *testing.T) {
	db := newTestStore(t)
	svc := NewSettingsService(db, store.NewNoopEmitter(), testLogger())
	ctx := context.Background()

	// Missing document reads as empty, not as an error
	voice, err := svc.GetBrandVoice(ctx)
	require.NoError(t, err)
	assert.Empty(t, voice)

	require.NoError(t, svc.SetBrandVoice(ctx, "Warm, direct, coffee-obsessed."))

	voice, err = svc.GetBrandVoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Warm, direct, coffee-obsessed.", voice)

	// Upsert replaces in place
	require.NoError(t, svc.SetBrandVoice(ctx, "Still warm."))
	voice, err = svc.GetBrandVoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Still warm.", voice)
}

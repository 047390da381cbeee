package mirror

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCollection_EmptyBeforeFirstReplace(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.ContentItem](s, "items:")

	all, err := coll.All(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestCollection_ReplaceAllAndAll(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.ContentItem](s, "items:")
	ctx := context.Background()

	items := []domain.ContentItem{
		{ID: "item-2", Title: "Newest"},
		{ID: "item-1", Title: "Older"},
	}

	require.NoError(t, coll.ReplaceAll(ctx, items))

	all, err := coll.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Snapshot order is preserved.
	assert.Equal(t, "item-2", all[0].ID)
	assert.Equal(t, "item-1", all[1].ID)
}

func TestCollection_ReplaceAllDropsStaleElements(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.ContentItem](s, "items:")
	ctx := context.Background()

	require.NoError(t, coll.ReplaceAll(ctx, []domain.ContentItem{
		{ID: "item-1"}, {ID: "item-2"}, {ID: "item-3"},
	}))
	require.NoError(t, coll.ReplaceAll(ctx, []domain.ContentItem{
		{ID: "item-9"},
	}))

	all, err := coll.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "item-9", all[0].ID)
}

func TestCollection_ReplaceAllWithEmptyClears(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.ContentItem](s, "items:")
	ctx := context.Background()

	require.NoError(t, coll.ReplaceAll(ctx, []domain.ContentItem{{ID: "item-1"}}))
	require.NoError(t, coll.ReplaceAll(ctx, nil))

	n, err := coll.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCollection_Len(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.Campaign](s, "campaigns:")
	ctx := context.Background()

	require.NoError(t, coll.ReplaceAll(ctx, []domain.Campaign{
		{ID: "camp-1"}, {ID: "camp-2"},
	}))

	n, err := coll.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollection_PrefixesAreIsolated(t *testing.T) {
	s := newTestStore(t)
	items := NewCollection[domain.ContentItem](s, "items:")
	campaigns := NewCollection[domain.Campaign](s, "campaigns:")
	ctx := context.Background()

	require.NoError(t, items.ReplaceAll(ctx, []domain.ContentItem{{ID: "item-1"}}))
	require.NoError(t, campaigns.ReplaceAll(ctx, []domain.Campaign{{ID: "camp-1"}, {ID: "camp-2"}}))

	itemCount, err := items.Len(ctx)
	require.NoError(t, err)
	campaignCount, err := campaigns.Len(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, itemCount)
	assert.Equal(t, 2, campaignCount)
}

func TestCollection_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	coll := NewCollection[domain.ContentItem](s, "items:")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, coll.ReplaceAll(ctx, nil))
	_, err := coll.All(ctx)
	assert.Error(t, err)
}

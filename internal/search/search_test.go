package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &SearchDocument{
		ID:    "item-123",
		Type:  DocTypeItem,
		Name:  "Roastery Tour Reel",
		Stage: "Ready",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexDocuments_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Post One"},
		{ID: "item-2", Type: DocTypeItem, Name: "Post Two"},
		{ID: "item-3", Type: DocTypeItem, Name: "Post Three"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &SearchDocument{
		ID:   "item-123",
		Type: DocTypeItem,
		Name: "Test Post",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	err = index.DeleteDocument("item-123")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_Basic(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Roastery Tour Reel", DraftCopy: "Behind the scenes at the roastery"},
		{ID: "item-2", Type: DocTypeItem, Name: "Meet the Roaster", Notes: "Interview with our head roaster"},
		{ID: "item-3", Type: DocTypeItem, Name: "Brew Guide", DraftCopy: "How to brew a perfect pour over"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query: "roastery",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Search_ByType(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Launch Teaser"},
		{ID: "camp-1", Type: DocTypeCampaign, Name: "Launch Week"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query: "",
		Types: []string{string(DocTypeCampaign)},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "camp-1", result.Hits[0].ID)
}

func TestSearchIndex_Search_ByStage(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Draft Post", Stage: "Idea"},
		{ID: "item-2", Type: DocTypeItem, Name: "Scheduled Post", Stage: "Ready"},
		{ID: "item-3", Type: DocTypeItem, Name: "Live Post", Stage: "Published"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:  "",
		Stages: []string{"Ready", "Published"},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearchIndex_Search_ByChannel(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "IG Post", Channels: []string{"Instagram"}},
		{ID: "item-2", Type: DocTypeItem, Name: "Cross Post", Channels: []string{"Email", "Instagram"}},
		{ID: "item-3", Type: DocTypeItem, Name: "Site Post", Channels: []string{"Website"}},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	// A secondary channel matches the same as a primary one
	result, err := index.Search(ctx, SearchParams{
		Query:    "",
		Channels: []string{"Instagram"},
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearchIndex_Search_ByCampaign(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Teaser One", CampaignID: "camp-1"},
		{ID: "item-2", Type: DocTypeItem, Name: "Teaser Two", CampaignID: "camp-1"},
		{ID: "item-3", Type: DocTypeItem, Name: "Unrelated"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:      "",
		CampaignID: "camp-1",
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearchIndex_Search_DateRange(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "item-1", Type: DocTypeItem, Name: "Early Post", Date: "2026-03-01"},
		{ID: "item-2", Type: DocTypeItem, Name: "Mid Post", Date: "2026-05-15"},
		{ID: "item-3", Type: DocTypeItem, Name: "Late Post", Date: "2026-09-01"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:    "",
		DateFrom: "2026-04-01",
		DateTo:   "2026-06-30",
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "item-2", result.Hits[0].ID)
}

func TestSearchIndex_Search_Prefix(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &SearchDocument{
		ID:   "item-1",
		Type: DocTypeItem,
		Name: "Roastery Tour",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	ctx := context.Background()

	// Prefix of "Roastery" - should still find the result
	result, err := index.Search(ctx, SearchParams{
		Query: "Roast",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &SearchDocument{ID: "item-1", Type: DocTypeItem, Name: "Test"}
	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Rebuild - should clear the index
	err = index.Rebuild()
	require.NoError(t, err)

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Persistence(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "search-persist-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	// Create index and add document
	index1, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)

	doc := &SearchDocument{ID: "item-1", Type: DocTypeItem, Name: "Test Post"}
	err = index1.IndexDocument(doc)
	require.NoError(t, err)

	err = index1.Close()
	require.NoError(t, err)

	// Reopen index and verify document is still there
	index2, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)
	defer index2.Close()

	count, err := index2.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	ctx := context.Background()
	result, err := index2.Search(ctx, SearchParams{Query: "Test", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestItemToSearchDocument(t *testing.T) {
	now := time.Now()
	item := &domain.ContentItem{
		ID:         "item-123",
		Title:      "Roastery Tour Reel",
		Type:       "The Build",
		Format:     "Story",
		Stage:      "Ready",
		Date:       "2026-03-10",
		CampaignID: "camp-456",
		DraftCopy:  "Come see where it happens",
		Notes:      "Film on Tuesday",
		Channels: domain.Channels{
			Primary:   "Instagram",
			Secondary: []string{"Email"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc := ItemToSearchDocument(item)

	assert.Equal(t, "item-123", doc.ID)
	assert.Equal(t, DocTypeItem, doc.Type)
	assert.Equal(t, "Roastery Tour Reel", doc.Name)
	assert.Equal(t, "The Build", doc.ContentType)
	assert.Equal(t, "Story", doc.Format)
	assert.Equal(t, "Ready", doc.Stage)
	assert.Equal(t, "2026-03-10", doc.Date)
	assert.Equal(t, "camp-456", doc.CampaignID)
	assert.Equal(t, []string{"Instagram", "Email"}, doc.Channels)
	assert.Equal(t, now.UnixMilli(), doc.CreatedAt)
}

func TestCampaignToSearchDocument(t *testing.T) {
	campaign := &domain.Campaign{
		ID:         "camp-123",
		Name:       "Vol. 3 Launch",
		KeyMessage: "The next chapter drops",
		DropDate:   "2026-04-20",
	}

	doc := CampaignToSearchDocument(campaign)

	assert.Equal(t, "camp-123", doc.ID)
	assert.Equal(t, DocTypeCampaign, doc.Type)
	assert.Equal(t, "Vol. 3 Launch", doc.Name)
	assert.Equal(t, "The next chapter drops", doc.KeyMessage)
	assert.Equal(t, "2026-04-20", doc.DropDate)
}

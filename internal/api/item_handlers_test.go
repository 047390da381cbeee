package api

import (
	"net/http"
	"testing"

	"encoding/json/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func createTestItem(t *testing.T, ts *testServer, title string) domain.ContentItem {
	t.Helper()

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"title": title,
		"type":  "Coffee Life",
		"stage": "Idea",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, "create failed: %s", resp.Body.String())

	var item domain.ContentItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &item))
	require.NotEmpty(t, item.ID)
	return item
}

func TestItemCRUD(t *testing.T) {
	ts := setupTestServer(t)

	created := createTestItem(t, ts, "V60 brewing reel")
	assert.Equal(t, "Idea", created.Stage)
	assert.False(t, created.CreatedAt.IsZero())

	// Read it back.
	resp := ts.api.Get("/api/v1/items/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var fetched domain.ContentItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	assert.Equal(t, "V60 brewing reel", fetched.Title)

	// Update the stage.
	resp = ts.api.Put("/api/v1/items/"+created.ID, map[string]any{
		"title": "V60 brewing reel",
		"type":  "Coffee Life",
		"stage": "In Production",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated domain.ContentItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "In Production", updated.Stage)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	// List includes it.
	resp = ts.api.Get("/api/v1/items")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), created.ID)

	// Delete.
	resp = ts.api.Delete("/api/v1/items/" + created.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/items/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateItem_ValidationError(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"title": "",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION")
}

func TestCreateItem_UnknownStageRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"title": "Bad stage",
		"stage": "Shipped",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCampaignCRUDAndItems(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/campaigns", map[string]any{
		"name":        "Spring drop",
		"key_message": "New single origin",
		"drop_date":   "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var campaign domain.Campaign
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &campaign))
	require.NotEmpty(t, campaign.ID)

	// Link an item to the campaign.
	resp = ts.api.Post("/api/v1/items", map[string]any{
		"title":       "Drop teaser",
		"stage":       "Idea",
		"campaign_id": campaign.ID,
		"channels": map[string]any{
			"primary":   "Email",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	// Unlinked item should not appear under the campaign.
	createTestItem(t, ts, "Unrelated post")

	resp = ts.api.Get("/api/v1/campaigns/" + campaign.ID + "/items")
	require.Equal(t, http.StatusOK, resp.Code)

	var out ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Drop teaser", out.Items[0].Title)

	// Delete leaves the item orphaned but intact.
	resp = ts.api.Delete("/api/v1/campaigns/" + campaign.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/items")
	assert.Contains(t, resp.Body.String(), "Drop teaser")
}

func TestCreateCampaign_NameRequired(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/campaigns", map[string]any{
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

package api

import (
	"net/http"
	"testing"

	"encoding/json/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/domain"
)

func planItem(title string) map[string]any {
	return map[string]any{
		"title": title,
		"type":  "Coffee Life",
		"stage": "Idea",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	}
}

func TestApplyPlanItems_CreatesAndReports(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/plan/items", map[string]any{
		"items": []map[string]any{
			planItem("First post"),
			planItem("Second post"),
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Result.Created)
	assert.Equal(t, 0, out.Result.Updated)
	assert.Equal(t, 0, out.Result.Deleted)
	assert.Empty(t, out.Result.Failures)
	require.Len(t, out.Items, 2)
	for _, item := range out.Items {
		assert.NotEmpty(t, item.ID)
	}

	// The mirror now serves the refreshed collection.
	resp = ts.api.Get("/api/v1/plan/items")
	require.Equal(t, http.StatusOK, resp.Code)

	var mirrored ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &mirrored))
	assert.Equal(t, 2, mirrored.Total)
}

func TestApplyPlanItems_UnchangedIsNoop(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/plan/items", map[string]any{
		"items": []map[string]any{planItem("Only post")},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var first ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))

	// Resubmit the applied collection verbatim.
	resp = ts.api.Post("/api/v1/plan/items", map[string]any{"items": first.Items})
	require.Equal(t, http.StatusOK, resp.Code)

	var second ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &second))
	assert.Equal(t, 0, second.Result.Created)
	assert.Equal(t, 0, second.Result.Updated)
	assert.Equal(t, 0, second.Result.Deleted)
}

func TestApplyPlanItems_SnapshotAfterDirectWriteIsNoop(t *testing.T) {
	ts := setupTestServer(t)

	// Write through the CRUD surface, bypassing the planner. The change
	// event refreshes the mirror before any plan submission.
	resp := ts.api.Post("/api/v1/items", planItem("Out-of-band post"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/items")
	require.Equal(t, http.StatusOK, resp.Code)

	var listed ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Total)

	// Resubmitting the authoritative collection verbatim must not mint a
	// duplicate row.
	resp = ts.api.Post("/api/v1/plan/items", map[string]any{"items": listed.Items})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Zero(t, out.Result.Created+out.Result.Updated+out.Result.Deleted)
	require.Len(t, out.Items, 1)
	assert.Equal(t, listed.Items[0].ID, out.Items[0].ID)
}

func TestApplyPlanItems_RemovalDeletes(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/plan/items", map[string]any{
		"items": []map[string]any{planItem("Keep"), planItem("Drop")},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var applied ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &applied))
	require.Len(t, applied.Items, 2)

	var keep []domain.ContentItem
	for _, item := range applied.Items {
		if item.Title == "Keep" {
			keep = append(keep, item)
		}
	}
	require.Len(t, keep, 1)

	resp = ts.api.Post("/api/v1/plan/items", map[string]any{"items": keep})
	require.Equal(t, http.StatusOK, resp.Code)

	var out ApplyItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Result.Deleted)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Keep", out.Items[0].Title)
}

func TestApplyPlanItems_InvalidElementRejectsBatch(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/plan/items", map[string]any{
		"items": []map[string]any{
			planItem("Fine"),
			{"title": "", "channels": map[string]any{"primary": "Email", "secondary": []string{}}},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION")

	// Nothing was written.
	listResp := ts.api.Get("/api/v1/items")
	var out ItemsResponse
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &out))
	assert.Equal(t, 0, out.Total)
}

func TestApplyPlanCampaigns(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/plan/campaigns", map[string]any{
		"campaigns": []map[string]any{
			{"name": "Launch week", "key_message": "We are live"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out ApplyCampaignsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Result.Created)
	require.Len(t, out.Campaigns, 1)
	assert.Equal(t, "Launch week", out.Campaigns[0].Name)
}

func TestRefreshPlan(t *testing.T) {
	ts := setupTestServer(t)

	createTestItem(t, ts, "Direct write")

	resp := ts.api.Post("/api/v1/plan/refresh")
	require.Equal(t, http.StatusOK, resp.Code)

	var out RefreshResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Items)

	resp = ts.api.Get("/api/v1/plan/items")
	var mirrored ItemsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &mirrored))
	assert.Equal(t, 1, mirrored.Total)
}

func TestImportPlan_MergesWithoutRemoving(t *testing.T) {
	ts := setupTestServer(t)

	existing := createTestItem(t, ts, "Already here")

	// Refresh so the planner mirror knows about the direct write.
	resp := ts.api.Post("/api/v1/plan/refresh")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/import", map[string]any{
		"items": []map[string]any{planItem("Imported post")},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var summary struct {
		BatchID string `json:"batch_id"`
		Items   *struct {
			Created int `json:"created"`
			Deleted int `json:"deleted"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.NotEmpty(t, summary.BatchID)
	require.NotNil(t, summary.Items)
	assert.Equal(t, 1, summary.Items.Created)
	assert.Equal(t, 0, summary.Items.Deleted)

	// Both items survive.
	listResp := ts.api.Get("/api/v1/items")
	assert.Contains(t, listResp.Body.String(), existing.ID)
	assert.Contains(t, listResp.Body.String(), "Imported post")
}

func TestImportPlan_EmptyRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/import", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

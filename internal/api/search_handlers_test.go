package api

import (
	"net/http"
	"testing"

	"encoding/json/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/search"
)

func TestSearchEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"title": "Kalita pour over tutorial",
		"type":  "Coffee Life",
		"stage": "Ready",
		"channels": map[string]any{
			"primary":   "Instagram",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Post("/api/v1/items", map[string]any{
		"title": "Trade show recap",
		"type":  "Trade Show",
		"stage": "Idea",
		"channels": map[string]any{
			"primary":   "LinkedIn",
			"secondary": []string{},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	searchResp := ts.api.Get("/api/v1/search?q=pour+over")
	require.Equal(t, http.StatusOK, searchResp.Code)

	var result search.SearchResult
	require.NoError(t, json.Unmarshal(searchResp.Body.Bytes(), &result))
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Kalita pour over tutorial", result.Hits[0].Name)
}

func TestSearchEndpoint_StageFilter(t *testing.T) {
	ts := setupTestServer(t)

	for _, stage := range []string{"Idea", "Ready"} {
		resp := ts.api.Post("/api/v1/items", map[string]any{
			"title": "Roast profile notes",
			"type":  "The Build",
			"stage": stage,
			"channels": map[string]any{
				"primary":   "Website",
				"secondary": []string{},
			},
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	searchResp := ts.api.Get("/api/v1/search?q=roast&stages=Ready")
	require.Equal(t, http.StatusOK, searchResp.Code)

	var result search.SearchResult
	require.NoError(t, json.Unmarshal(searchResp.Body.Bytes(), &result))
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Ready", result.Hits[0].Stage)
}

func TestSearchReindex(t *testing.T) {
	ts := setupTestServer(t)

	createTestItem(t, ts, "Reindex target")

	resp := ts.api.Post("/api/v1/search/reindex")
	require.Equal(t, http.StatusOK, resp.Code)

	var out ReindexResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, uint64(1), out.Documents)
}

package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obi-coffee/tast-server/internal/config"
	"github.com/obi-coffee/tast-server/internal/mirror"
	"github.com/obi-coffee/tast-server/internal/search"
	"github.com/obi-coffee/tast-server/internal/service"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store"
	"github.com/obi-coffee/tast-server/internal/store/sqlite"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a fully wired server over temp storage.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	mirrorStore, err := mirror.Open(filepath.Join(dir, "mirror"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mirrorStore.Close() })

	index, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(dir, "search"),
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	plannerCfg := config.PlannerConfig{
		PriorityChannel: "Instagram",
		GapScanDays:     14,
		HeatmapWeeks:    12,
		CadenceMonths:   6,
	}

	planner := service.NewPlannerService(st, st, mirrorStore, store.NewNoopEmitter(), logger)
	searchSvc := service.NewSearchService(index, st, st, logger)
	st.SetSearchIndexer(searchSvc)
	// Same fan-out as production wiring: store writes refresh the mirror.
	st.SetEventEmitter(store.EmitterFunc(planner.NotifyStoreChange))

	services := &Services{
		Content:   service.NewContentService(st, logger),
		Campaign:  service.NewCampaignService(st, st, logger),
		Planner:   planner,
		Analytics: service.NewAnalyticsService(st, st, plannerCfg, logger),
		Search:    searchSvc,
		Settings:  service.NewSettingsService(st, store.NewNoopEmitter(), logger),
		Import:    service.NewImportService(planner, logger),
	}

	manager := sse.NewManager(logger)
	handler := sse.NewHandler(manager, logger)

	s := NewServer(st, services, handler, manager, logger)
	t.Cleanup(s.Stop)

	// Seed the mirror so plan reads and applies have a baseline.
	_, err = planner.RefreshItems(context.Background())
	require.NoError(t, err)
	_, err = planner.RefreshCampaigns(context.Background())
	require.NoError(t, err)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"database"`)
	assert.Contains(t, body, `"search"`)
	assert.Contains(t, body, `"sse"`)
}

func TestHealthCheck_DegradedWithoutSSE(t *testing.T) {
	ts := setupTestServer(t)
	ts.sseManager = nil

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"degraded"`)
}

func TestBrandVoiceRoundTrip(t *testing.T) {
	ts := setupTestServer(t)

	// Empty before anything is saved.
	resp := ts.api.Get("/api/v1/settings/brand-voice")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"value":""`)

	resp = ts.api.Put("/api/v1/settings/brand-voice", map[string]any{
		"value": "Warm, direct, never salesy.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/settings/brand-voice")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "never salesy")
}

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search the collection",
		Description: "Full-text search across content items and campaigns with stage, channel, theme, campaign, and date filters",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindexSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/reindex",
		Summary:     "Rebuild the search index",
		Description: "Clears the index and reindexes every item and campaign from the store",
		Tags:        []string{"Search"},
	}, s.handleReindex)
}

// === DTOs ===

// SearchInput contains parameters for searching the collection.
type SearchInput struct {
	Query      string `query:"q" doc:"Search query"`
	Types      string `query:"types" doc:"Comma-separated document types (item,campaign). Omit for all."`
	Stages     string `query:"stages" doc:"Comma-separated pipeline stages to filter by"`
	Channels   string `query:"channels" doc:"Comma-separated channels to filter by"`
	Themes     string `query:"themes" doc:"Comma-separated content themes to filter by"`
	CampaignID string `query:"campaign_id" doc:"Restrict to items linked to this campaign"`
	DateFrom   string `query:"date_from" doc:"Minimum scheduled date (YYYY-MM-DD, inclusive)"`
	DateTo     string `query:"date_to" doc:"Maximum scheduled date (YYYY-MM-DD, inclusive)"`
	Limit      int    `query:"limit" doc:"Max results (default 20)"`
	Offset     int    `query:"offset" doc:"Pagination offset"`
	SortBy     string `query:"sort" doc:"Sort order: relevance, title, date, or recent"`
	Facets     bool   `query:"facets" doc:"Include facet counts in the response"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.SearchResult
}

// ReindexResponse reports the rebuilt index size.
type ReindexResponse struct {
	Documents uint64 `json:"documents" doc:"Documents in the rebuilt index"`
}

// ReindexOutput wraps the reindex response for Huma.
type ReindexOutput struct {
	Body ReindexResponse
}

// splitCSV splits a comma-separated query value, dropping empty entries.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Types = splitCSV(input.Types)
	params.Stages = splitCSV(input.Stages)
	params.Channels = splitCSV(input.Channels)
	params.ContentTypes = splitCSV(input.Themes)
	params.CampaignID = input.CampaignID
	params.DateFrom = input.DateFrom
	params.DateTo = input.DateTo
	params.IncludeFacets = input.Facets

	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		s.logger.Error("Search failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

func (s *Server) handleReindex(ctx context.Context, _ *struct{}) (*ReindexOutput, error) {
	if err := s.services.Search.ReindexAll(ctx); err != nil {
		s.logger.Error("Reindex failed", "error", err)
		return nil, err
	}

	count, err := s.services.Search.DocumentCount()
	if err != nil {
		return nil, err
	}

	return &ReindexOutput{Body: ReindexResponse{Documents: count}}, nil
}

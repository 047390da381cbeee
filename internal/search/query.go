package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string   // User's search query
	Types []string // Document types to include (empty = all)

	// Filters
	Stages       []string // Filter by exact pipeline stage
	Channels     []string // Filter by channel (primary or secondary, OR across values)
	ContentTypes []string // Filter by exact theme name
	CampaignID   string   // Filter items by linked campaign
	DateFrom     string   // Minimum scheduled date, inclusive (YYYY-MM-DD)
	DateTo       string   // Maximum scheduled date, inclusive (YYYY-MM-DD)

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "date", "recent"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool     // Include facet counts in results
	FacetFields   []string // Which fields to facet on
	Highlight     bool     // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		FacetFields:   []string{"type", "stage", "channels"},
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitempty"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID          string            `json:"id"`
	Type        DocType           `json:"type"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	ContentType string            `json:"content_type,omitempty"`
	Format      string            `json:"format,omitempty"`
	Stage       string            `json:"stage,omitempty"`
	Date        string            `json:"date,omitempty"`
	Channels    []string          `json:"channels,omitempty"`
	CampaignID  string            `json:"campaign_id,omitempty"`
	KeyMessage  string            `json:"key_message,omitempty"`
	DropDate    string            `json:"drop_date,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Types    []FacetCount `json:"types,omitempty"`
	Stages   []FacetCount `json:"stages,omitempty"`
	Channels []FacetCount `json:"channels,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		addFacets(searchRequest, params)
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("draft_copy")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "type", "name", "content_type", "format", "stage",
		"date", "channels", "campaign_id", "key_message", "drop_date",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if t, ok := hit.Fields["type"].(string); ok {
			searchHit.Type = DocType(t)
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if ct, ok := hit.Fields["content_type"].(string); ok {
			searchHit.ContentType = ct
		}
		if f, ok := hit.Fields["format"].(string); ok {
			searchHit.Format = f
		}
		if st, ok := hit.Fields["stage"].(string); ok {
			searchHit.Stage = st
		}
		if d, ok := hit.Fields["date"].(string); ok {
			searchHit.Date = d
		}
		if cid, ok := hit.Fields["campaign_id"].(string); ok {
			searchHit.CampaignID = cid
		}
		if km, ok := hit.Fields["key_message"].(string); ok {
			searchHit.KeyMessage = km
		}
		if dd, ok := hit.Fields["drop_date"].(string); ok {
			searchHit.DropDate = dd
		}
		// Bleve returns single-element arrays as bare strings
		switch ch := hit.Fields["channels"].(type) {
		case string:
			searchHit.Channels = []string{ch}
		case []interface{}:
			for _, v := range ch {
				if sv, ok := v.(string); ok {
					searchHit.Channels = append(searchHit.Channels, sv)
				}
			}
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query across title, draft copy, and notes. The title carries
	// the highest boost so an exact title match beats a body mention.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		draftMatch := bleve.NewMatchQuery(params.Query)
		draftMatch.SetField("draft_copy")
		draftMatch.SetBoost(1.5)
		textQueries = append(textQueries, draftMatch)

		notesMatch := bleve.NewMatchQuery(params.Query)
		notesMatch.SetField("notes")
		textQueries = append(textQueries, notesMatch)

		keyMessageMatch := bleve.NewMatchQuery(params.Query)
		keyMessageMatch.SetField("key_message")
		textQueries = append(textQueries, keyMessageMatch)

		// Fuzzy matching for typo tolerance on the title
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Type filter
	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(t)
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	// Stage filter (exact match, OR across stages)
	if len(params.Stages) > 0 {
		stageQueries := make([]query.Query, len(params.Stages))
		for i, stage := range params.Stages {
			sq := bleve.NewTermQuery(stage)
			sq.SetField("stage")
			stageQueries[i] = sq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(stageQueries...))
	}

	// Channel filter (matches primary or secondary alike)
	if len(params.Channels) > 0 {
		channelQueries := make([]query.Query, len(params.Channels))
		for i, channel := range params.Channels {
			cq := bleve.NewTermQuery(channel)
			cq.SetField("channels")
			channelQueries[i] = cq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(channelQueries...))
	}

	// Theme filter
	if len(params.ContentTypes) > 0 {
		themeQueries := make([]query.Query, len(params.ContentTypes))
		for i, theme := range params.ContentTypes {
			tq := bleve.NewTermQuery(theme)
			tq.SetField("content_type")
			themeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(themeQueries...))
	}

	// Campaign filter
	if params.CampaignID != "" {
		cq := bleve.NewTermQuery(params.CampaignID)
		cq.SetField("campaign_id")
		queries = append(queries, cq)
	}

	// Scheduled date range. YYYY-MM-DD keywords order lexicographically, so a
	// term range query gives correct inclusive date bounds.
	if params.DateFrom != "" || params.DateTo != "" {
		min, max := params.DateFrom, params.DateTo
		if max == "" {
			max = "9999-12-31"
		}
		inclusive := true
		rangeQuery := bleve.NewTermRangeInclusiveQuery(min, max, &inclusive, &inclusive)
		rangeQuery.SetField("date")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "title", "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "date":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-date", "-name"})
		} else {
			req.SortBy([]string{"date", "name"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// addFacets configures facet requests.
func addFacets(req *bleve.SearchRequest, params SearchParams) {
	for _, field := range params.FacetFields {
		facetReq := bleve.NewFacetRequest(field, 20) // Top 20 values
		req.AddFacet(field, facetReq)
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if typeFacet, ok := result.Facets["type"]; ok {
		for _, term := range typeFacet.Terms.Terms() {
			facets.Types = append(facets.Types, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if stageFacet, ok := result.Facets["stage"]; ok {
		for _, term := range stageFacet.Terms.Terms() {
			facets.Stages = append(facets.Stages, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if channelFacet, ok := result.Facets["channels"]; ok {
		for _, term := range channelFacet.Terms.Terms() {
			facets.Channels = append(facets.Channels, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}

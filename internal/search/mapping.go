package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for search documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with English stemming
//  2. Draft copy and notes searchable without bloating stored fields
//  3. Exact keyword matching for type, stage, and channel filters
//  4. Term vectors enabled on key fields for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target, boosted
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Draft copy - searchable but not stored (too large)
	draftFieldMapping := bleve.NewTextFieldMapping()
	draftFieldMapping.Analyzer = en.AnalyzerName
	draftFieldMapping.Store = false
	draftFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("draft_copy", draftFieldMapping)

	// Notes - searchable but not stored
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = en.AnalyzerName
	notesFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	// Key message - searchable for campaigns
	keyMessageFieldMapping := bleve.NewTextFieldMapping()
	keyMessageFieldMapping.Analyzer = en.AnalyzerName
	keyMessageFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("key_message", keyMessageFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// Type - for filtering by document type
	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Content type - the theme catalog uses multi-word names
	// (e.g. "Roaster Love"), keyword keeps them intact
	contentTypeFieldMapping := bleve.NewTextFieldMapping()
	contentTypeFieldMapping.Analyzer = keyword.Name
	contentTypeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("content_type", contentTypeFieldMapping)

	// Format - exact matching
	formatFieldMapping := bleve.NewTextFieldMapping()
	formatFieldMapping.Analyzer = keyword.Name
	formatFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("format", formatFieldMapping)

	// Stage - for pipeline filtering and faceting
	stageFieldMapping := bleve.NewTextFieldMapping()
	stageFieldMapping.Analyzer = keyword.Name
	stageFieldMapping.Store = true
	stageFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("stage", stageFieldMapping)

	// Channels - flattened primary plus secondary
	channelsFieldMapping := bleve.NewTextFieldMapping()
	channelsFieldMapping.Analyzer = keyword.Name
	channelsFieldMapping.Store = true
	channelsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("channels", channelsFieldMapping)

	// Campaign ID - for filtering items by campaign
	campaignIDFieldMapping := bleve.NewTextFieldMapping()
	campaignIDFieldMapping.Analyzer = keyword.Name
	campaignIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("campaign_id", campaignIDFieldMapping)

	// Date - YYYY-MM-DD strings range and sort correctly as keywords
	dateFieldMapping := bleve.NewTextFieldMapping()
	dateFieldMapping.Analyzer = keyword.Name
	dateFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("date", dateFieldMapping)

	dropDateFieldMapping := bleve.NewTextFieldMapping()
	dropDateFieldMapping.Analyzer = keyword.Name
	dropDateFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("drop_date", dropDateFieldMapping)

	// --- Numeric fields (sorting) ---

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

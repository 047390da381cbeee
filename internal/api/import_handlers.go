package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/obi-coffee/tast-server/internal/service"
)

func (s *Server) registerImportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "importPlan",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Import a partial plan",
		Description: "Merges the posted items and campaigns into the current collections. Entries without an id are created; entries with a known id replace the stored version. Nothing is removed.",
		Tags:        []string{"Import"},
	}, s.handleImportPlan)
}

// ImportInput carries a partial plan to merge.
type ImportInput struct {
	Body service.PlanFile
}

// ImportOutput wraps the import summary for Huma.
type ImportOutput struct {
	Body service.ImportSummary
}

func (s *Server) handleImportPlan(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	summary, err := s.services.Import.Import(ctx, &input.Body)
	if err != nil {
		return nil, err
	}

	return &ImportOutput{Body: *summary}, nil
}

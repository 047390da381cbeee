package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBrandVoice",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/brand-voice",
		Summary:     "Get the brand voice document",
		Description: "Returns an empty document when none has been saved yet",
		Tags:        []string{"Settings"},
	}, s.handleGetBrandVoice)

	huma.Register(s.api, huma.Operation{
		OperationID: "setBrandVoice",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/brand-voice",
		Summary:     "Replace the brand voice document",
		Tags:        []string{"Settings"},
	}, s.handleSetBrandVoice)
}

// === DTOs ===

// BrandVoiceBody is the brand voice document on the wire.
type BrandVoiceBody struct {
	Value string `json:"value" doc:"Free-text brand voice document"`
}

// BrandVoiceOutput wraps the brand voice document for Huma.
type BrandVoiceOutput struct {
	Body BrandVoiceBody
}

// BrandVoiceInput carries a replacement brand voice document.
type BrandVoiceInput struct {
	Body BrandVoiceBody
}

// === Handlers ===

func (s *Server) handleGetBrandVoice(ctx context.Context, _ *struct{}) (*BrandVoiceOutput, error) {
	value, err := s.services.Settings.GetBrandVoice(ctx)
	if err != nil {
		return nil, err
	}

	return &BrandVoiceOutput{Body: BrandVoiceBody{Value: value}}, nil
}

func (s *Server) handleSetBrandVoice(ctx context.Context, input *BrandVoiceInput) (*BrandVoiceOutput, error) {
	if err := s.services.Settings.SetBrandVoice(ctx, input.Body.Value); err != nil {
		return nil, err
	}

	return &BrandVoiceOutput{Body: BrandVoiceBody{Value: input.Body.Value}}, nil
}

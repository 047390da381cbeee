package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obi-coffee/tast-server/internal/errors"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store"
)

// brandVoiceKey is the settings row holding the brand voice document.
const brandVoiceKey = "brand_voice"

// SettingsService manages planner-wide settings such as the brand voice
// document.
type SettingsService struct {
	store   store.SettingsStore
	emitter store.EventEmitter
	logger  *slog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store store.SettingsStore, emitter store.EventEmitter, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		store:   store,
		emitter: emitter,
		logger:  logger,
	}
}

// GetBrandVoice retrieves the brand voice document. A missing row is not
// an error; it reads as an empty document.
func (s *SettingsService) GetBrandVoice(ctx context.Context) (string, error) {
	value, err := s.store.GetSetting(ctx, brandVoiceKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get brand voice: %w", err)
	}
	return value, nil
}

// SetBrandVoice upserts the brand voice document and notifies listeners.
func (s *SettingsService) SetBrandVoice(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.SetSetting(ctx, brandVoiceKey, value); err != nil {
		return fmt.Errorf("set brand voice: %w", err)
	}

	s.emitter.Emit(sse.NewBrandVoiceUpdatedEvent())
	s.logger.Info("brand voice updated", "length", len(value))

	return nil
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/obi-coffee/tast-server/internal/config"
	"github.com/obi-coffee/tast-server/internal/logger"
	"github.com/obi-coffee/tast-server/internal/service"
	"github.com/obi-coffee/tast-server/internal/store"
)

// ProvideContentService provides the content item service.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContentService(storeHandle.Store, log.Logger), nil
}

// ProvideCampaignService provides the campaign service.
func ProvideCampaignService(i do.Injector) (*service.CampaignService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCampaignService(storeHandle.Store, storeHandle.Store, log.Logger), nil
}

// ProvidePlannerService provides the plan reconciler and rewires the
// store's emitter so change events reach both the SSE clients and the
// planner's mirror refresh.
func ProvidePlannerService(i do.Injector) (*service.PlannerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	mirrorHandle := do.MustInvoke[*MirrorHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	planner := service.NewPlannerService(storeHandle.Store, storeHandle.Store, mirrorHandle.Store, sseHandle.Manager, log.Logger)

	storeHandle.SetEventEmitter(store.NewFanoutEmitter(
		sseHandle.Manager,
		store.EmitterFunc(planner.NotifyStoreChange),
	))

	return planner, nil
}

// ProvideAnalyticsService provides the analytics projections.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalyticsService(storeHandle.Store, storeHandle.Store, cfg.Planner, log.Logger), nil
}

// ProvideSettingsService provides the settings service.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingsService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideImportService provides the plan-file import service.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	planner := do.MustInvoke[*service.PlannerService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImportService(planner, log.Logger), nil
}

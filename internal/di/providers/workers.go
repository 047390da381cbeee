package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/obi-coffee/tast-server/internal/config"
	"github.com/obi-coffee/tast-server/internal/logger"
	"github.com/obi-coffee/tast-server/internal/service"
	"github.com/obi-coffee/tast-server/internal/watcher"
)

// ImportWatcherHandle wraps the import watcher with shutdown capability.
// The watcher is nil when no import directory is configured.
type ImportWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ImportWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideImportWatcher provides the drop-directory import watcher.
// Settled .json files in the configured directory are merged into the
// collections through the planner.
func ProvideImportWatcher(i do.Injector) (*ImportWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	importService := do.MustInvoke[*service.ImportService](i)
	planner := do.MustInvoke[*service.PlannerService](i)

	if cfg.Import.Path == "" {
		log.Info("Import watcher disabled, no import path configured")
		return &ImportWatcherHandle{}, nil
	}

	w, err := watcher.New(cfg.Import.Path, log.Logger, watcher.Options{
		SettleDelay: cfg.Import.SettleDelay,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Seed the mirror before the first import so the merge sees the
	// current collections.
	if _, err := planner.RefreshItems(ctx); err != nil {
		log.Warn("Initial item refresh failed", "error", err)
	}
	if _, err := planner.RefreshCampaigns(ctx); err != nil {
		log.Warn("Initial campaign refresh failed", "error", err)
	}

	// Start in background
	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Import watcher error", "error", err)
		}
	}()

	// Process settled files in background
	go func() {
		for {
			select {
			case event, ok := <-w.Events():
				if !ok {
					return
				}
				summary, err := importService.ImportFile(ctx, event.Path)
				if err != nil {
					log.Warn("Import failed",
						"error", err,
						"path", event.Path,
					)
					continue
				}
				log.Info("Plan file imported",
					"path", event.Path,
					"batch_id", summary.BatchID,
				)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				log.Warn("Import watcher error", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Import watcher started", "path", cfg.Import.Path)

	return &ImportWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}

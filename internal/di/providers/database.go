package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/obi-coffee/tast-server/internal/config"
	"github.com/obi-coffee/tast-server/internal/logger"
	"github.com/obi-coffee/tast-server/internal/mirror"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	dbPath := filepath.Join(cfg.Storage.BasePath, "tast.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	// Store writes broadcast change events to connected clients. The
	// planner provider later swaps this for a fan-out that also refreshes
	// the mirror; until then SSE alone is enough, since the HTTP server
	// only starts after every service is wired.
	db.SetEventEmitter(sseHandle.Manager)

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// MirrorHandle wraps the Badger mirror with shutdown capability.
type MirrorHandle struct {
	*mirror.Store
}

// Shutdown implements do.Shutdownable.
func (h *MirrorHandle) Shutdown() error {
	return h.Close()
}

// ProvideMirror provides the local collection mirror.
func ProvideMirror(i do.Injector) (*MirrorHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	mirrorPath := filepath.Join(cfg.Storage.BasePath, "mirror")
	m, err := mirror.Open(mirrorPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Mirror initialized", "path", mirrorPath)

	return &MirrorHandle{Store: m}, nil
}

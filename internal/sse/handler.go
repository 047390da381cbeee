package sse

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// writeDeadline is pushed forward after every successful write, so the
// server WriteTimeout reaps idle streams without cutting live ones.
const writeDeadline = 60 * time.Second

// Handler streams manager events over text/event-stream.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.Context().Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx would buffer otherwise

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, err := h.manager.Connect()
	if err != nil {
		h.logger.Error("failed to register SSE client", slog.String("error", err.Error()))
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	defer h.manager.Disconnect(client.ID)

	log := h.logger.With(slog.String("client_id", client.ID))

	hello := map[string]string{"client_id": client.ID}
	if err := h.write(w, rc, "connected", hello); err != nil {
		log.Warn("handshake write failed", slog.String("error", err.Error()))
		return
	}

	h.stream(w, r, rc, client, log)
}

// stream pumps events to one client until it goes away. Write failures
// mean the client hung up; that is the normal exit path.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, rc *http.ResponseController, client *Client, log *slog.Logger) {
	keepalive := time.NewTicker(heartbeatInterval)
	defer keepalive.Stop()

	for {
		select {
		case evt := <-client.EventChan:
			if err := h.write(w, rc, string(evt.Type), evt); err != nil {
				log.Info("SSE client went away")
				return
			}
		case <-keepalive.C:
			hb := NewHeartbeatEvent()
			if err := h.write(w, rc, string(hb.Type), hb); err != nil {
				log.Info("SSE client went away during heartbeat")
				return
			}
		case <-client.Done:
			log.Info("SSE stream closed by manager")
			return
		case <-r.Context().Done():
			log.Info("SSE client disconnected")
			return
		}
	}
}

func (h *Handler) write(w http.ResponseWriter, rc *http.ResponseController, eventType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}

	if err := rc.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		h.logger.Debug("failed to extend write deadline", slog.String("error", err.Error()))
	}
	return nil
}

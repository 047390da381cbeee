package sse

import (
	"context"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/obi-coffee/tast-server/internal/id"
)

const (
	// queueSize bounds events waiting for the broadcast loop. A plan
	// apply can emit one event per reconciled item, so this is sized
	// for full-plan imports.
	queueSize = 256

	// clientQueueSize bounds per-client delivery. A client that falls
	// this far behind starts losing events rather than stalling the
	// broadcast loop.
	clientQueueSize = 64

	heartbeatInterval = 30 * time.Second
)

// Client is one connected event stream.
type Client struct {
	ConnectedAt time.Time
	EventChan   chan Event
	Done        chan struct{}
	ID          string
}

// Manager fans out store and planner events to connected SSE clients.
// It implements store.EventEmitter.
type Manager struct {
	logger *slog.Logger
	events chan Event

	mu      sync.RWMutex // guards clients
	clients map[string]*Client

	emitMu sync.RWMutex // guards closed against concurrent Emit
	closed bool

	loop sync.WaitGroup
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger:  logger,
		events:  make(chan Event, queueSize),
		clients: make(map[string]*Client),
	}
}

// Start runs the broadcast loop until ctx is cancelled. Call once, in a
// goroutine, at startup.
func (m *Manager) Start(ctx context.Context) {
	m.loop.Add(1)
	defer m.loop.Done()

	m.logger.Info("SSE manager started")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case evt := <-m.events:
			m.broadcast(evt)
		case <-ticker.C:
			m.broadcast(NewHeartbeatEvent())
		case <-ctx.Done():
			m.logger.Info("SSE manager stopping")
			m.dropAllClients()
			return
		}
	}
}

// Emit queues an event for broadcast. Events emitted after shutdown, or
// while the queue is full, are dropped.
func (m *Manager) Emit(event any) {
	evt, ok := event.(Event)
	if !ok {
		m.logger.Error("emit of non-SSE event ignored")
		return
	}

	m.emitMu.RLock()
	defer m.emitMu.RUnlock()
	if m.closed {
		return
	}

	select {
	case m.events <- evt:
	default:
		m.logger.Error("SSE queue full, dropping event",
			slog.String("event_type", string(evt.Type)))
	}
}

// Shutdown stops accepting events, drains whatever is already queued, and
// waits for the broadcast loop to exit. Cancel the Start context before
// calling this.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.emitMu.Lock()
	m.closed = true
	m.emitMu.Unlock()

	m.loop.Wait()

	// The loop is gone; drain the queue ourselves.
	for {
		select {
		case evt := <-m.events:
			m.broadcast(evt)
		case <-ctx.Done():
			m.logger.Warn("SSE drain timed out, remaining events lost")
			return nil
		default:
			m.logger.Info("SSE manager shut down")
			return nil
		}
	}
}

// Connect registers a new client.
func (m *Manager) Connect() (*Client, error) {
	clientID, err := id.Generate("sse")
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:          clientID,
		EventChan:   make(chan Event, clientQueueSize),
		Done:        make(chan struct{}),
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	m.clients[client.ID] = client
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("SSE client connected",
		slog.String("client_id", clientID),
		slog.Int("total_clients", total))
	return client, nil
}

// Disconnect removes a client and closes its channels. Safe to call for
// an already-removed client.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, ok := m.clients[clientID]
	if ok {
		delete(m.clients, clientID)
	}
	total := len(m.clients)
	m.mu.Unlock()

	if !ok {
		return
	}
	close(client.Done)
	close(client.EventChan)

	m.logger.Info("SSE client disconnected",
		slog.String("client_id", clientID),
		slog.Duration("connected_for", time.Since(client.ConnectedAt)),
		slog.Int("total_clients", total))
}

// Clients iterates over connected clients.
func (m *Manager) Clients() iter.Seq[*Client] {
	return func(yield func(*Client) bool) {
		m.mu.RLock()
		defer m.mu.RUnlock()
		for _, client := range m.clients {
			if !yield(client) {
				return
			}
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) broadcast(evt Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var delivered, dropped int
	for _, client := range m.clients {
		select {
		case client.EventChan <- evt:
			delivered++
		default:
			dropped++
			m.logger.Warn("dropping event for slow SSE client",
				slog.String("client_id", client.ID),
				slog.String("event_type", string(evt.Type)))
		}
	}

	if evt.Type != EventHeartbeat {
		m.logger.Debug("SSE broadcast",
			slog.String("event_type", string(evt.Type)),
			slog.Int("delivered", delivered),
			slog.Int("dropped", dropped))
	}
}

func (m *Manager) dropAllClients() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		close(client.Done)
		close(client.EventChan)
	}
	m.clients = make(map[string]*Client)
}

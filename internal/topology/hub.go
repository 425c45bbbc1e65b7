// Package topology pushes periodic platform status snapshots to websocket
// subscribers, so the demo dashboard can render the service graph live.
package topology

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/streamflix/catalog/internal/domain"
)

const (
	broadcastInterval = 5 * time.Second
	writeTimeout      = 10 * time.Second
)

// StatusSource reports one service's node in the topology snapshot.
type StatusSource interface {
	Status() domain.ServiceStatus
}

// Snapshot is the message pushed to every subscriber.
type Snapshot struct {
	Timestamp string                 `json:"timestamp"`
	Services  []domain.ServiceStatus `json:"services"`
}

// subscriber is one connected client. The mutex serializes writes: the
// initial snapshot goes out from the HTTP handler goroutine while broadcasts
// come from the Run goroutine, and gorilla/websocket allows only one writer
// per connection at a time.
type subscriber struct {
	conn *websocket.Conn

	mu sync.Mutex
}

func (s *subscriber) write(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(snap)
}

// Hub fans status snapshots out to connected websocket clients.
type Hub struct {
	sources []StatusSource
	logger  *zap.Logger

	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewHub creates a hub over the given status sources.
func NewHub(logger *zap.Logger, sources ...StatusSource) *Hub {
	return &Hub{
		sources: sources,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
			// Demo surface, no cross-origin restrictions.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Snapshot collects the current status of every source.
func (h *Hub) Snapshot() Snapshot {
	services := make([]domain.ServiceStatus, 0, len(h.sources))
	for _, src := range h.sources {
		services = append(services, src.Status())
	}
	return Snapshot{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}
}

// Run broadcasts snapshots on a fixed interval until ctx is cancelled,
// then closes all remaining connections.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(h.Snapshot())
		}
	}
}

// ServeHTTP upgrades the request and subscribes it, sending one snapshot
// immediately so the client does not wait for the first tick.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("topology subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	h.send(sub, h.Snapshot())

	// Drain reads so close frames and errors are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(sub)
				return
			}
		}
	}()
}

func (h *Hub) broadcast(snap Snapshot) {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		h.send(s, snap)
	}
}

func (h *Hub) send(sub *subscriber, snap Snapshot) {
	if err := sub.write(snap); err != nil {
		h.logger.Debug("topology subscriber dropped", zap.Error(err))
		h.drop(sub)
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for s := range h.subs {
		s.conn.Close()
	}
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()
}

package registry

import (
	"log/slog"
	"sync"

	"github.com/SatyamS-71/rmcs/domain"
)

// Registry maps server-assigned connection ids to live connections.
type Registry struct {
	conns map[string]domain.Connection
	mu    sync.RWMutex
}

func New() *Registry {
	return &Registry{
		conns: make(map[string]domain.Connection),
	}
}

func (r *Registry) Register(conn domain.Connection) {
	r.mu.Lock()
	r.conns[conn.ID()] = conn
	count := len(r.conns)
	r.mu.Unlock()

	slog.Info("client connected", "clientId", conn.ID(), "connections", count)
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	_, exists := r.conns[id]
	delete(r.conns, id)
	count := len(r.conns)
	r.mu.Unlock()

	if exists {
		slog.Info("client disconnected", "clientId", id, "connections", count)
	}
}

// Send never blocks. A connection that cannot take the frame is closed, which
// ends its read loop and triggers the usual disconnect cleanup.
func (r *Registry) Send(id string, data []byte) {
	r.mu.RLock()
	conn, exists := r.conns[id]
	r.mu.RUnlock()

	if !exists {
		slog.Debug("send to unknown connection", "clientId", id)
		return
	}

	if err := conn.Send(data); err != nil {
		slog.Warn("send failed, closing connection", "clientId", id, "error", err)
		go func(c domain.Connection) {
			c.Close()
		}(conn)
	}
}

func (r *Registry) Stats() (connections int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

package chat

import (
	"sync"

	"github.com/mirsal/support-chat/backend/internal/model/chat"
)

// Connection is a live transport session able to receive protocol events.
// Deliver must not block: transports queue internally and report failure
// instead of stalling the broadcast path.
type Connection interface {
	ID() string
	Deliver(event chat.OutEvent) error
}

// Registry tracks the currently connected parties of one conversation.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Connection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Connection)}
}

// Register adds the connection, replacing a previous one with the same ID.
func (r *Registry) Register(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn.ID()] = conn
}

// Unregister removes the connection. Removing an absent connection is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

// ForEach invokes fn for every live connection.
func (r *Registry) ForEach(fn func(Connection)) {
	r.mu.RLock()
	conns := make([]Connection, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	for _, c := range conns {
		fn(c)
	}
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

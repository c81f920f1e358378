package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live client connections. A connection is bound to one
// authenticated user identity for its whole lifetime; a user may hold
// several connections (multiple tabs).
type Registry struct {
	mu     sync.RWMutex
	byConn map[uuid.UUID]*Client
	byUser map[uuid.UUID]map[uuid.UUID]*Client // userID -> connID -> client
}

func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[uuid.UUID]*Client),
		byUser: make(map[uuid.UUID]map[uuid.UUID]*Client),
	}
}

func (r *Registry) Add(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byConn[c.ID] = c
	conns, ok := r.byUser[c.UserID]
	if !ok {
		conns = make(map[uuid.UUID]*Client)
		r.byUser[c.UserID] = conns
	}
	conns[c.ID] = c
}

// Remove is idempotent; it returns the removed client, or nil when the
// connection was not registered.
func (r *Registry) Remove(connID uuid.UUID) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byConn[connID]
	if !ok {
		return nil
	}
	delete(r.byConn, connID)

	if conns, ok := r.byUser[c.UserID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(r.byUser, c.UserID)
		}
	}
	return c
}

func (r *Registry) Lookup(connID uuid.UUID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byConn[connID]
	return c, ok
}

func (r *Registry) ConnectionsOf(userID uuid.UUID) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	out := make([]*Client, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	return out
}

func (r *Registry) IsUserOnline(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}

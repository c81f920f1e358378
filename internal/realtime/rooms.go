package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Rooms maps thread ids to the set of subscribed connections. A connection
// is a member of at most one room at a time; joining a new room leaves the
// previous one first.
type Rooms struct {
	mu      sync.RWMutex
	members map[string]map[uuid.UUID]struct{} // threadID -> set of connID
	current map[uuid.UUID]string              // connID -> threadID
}

func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[string]map[uuid.UUID]struct{}),
		current: make(map[uuid.UUID]string),
	}
}

// Join adds the connection to the room, creating it lazily. It returns the
// room the connection previously occupied ("" if none) so the caller can
// broadcast presence updates to both rooms.
func (r *Rooms) Join(connID uuid.UUID, threadID string) (previous string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous = r.current[connID]
	if previous == threadID {
		return ""
	}
	if previous != "" {
		r.removeLocked(connID, previous)
	}

	set, ok := r.members[threadID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		r.members[threadID] = set
	}
	set[connID] = struct{}{}
	r.current[connID] = threadID
	return previous
}

// Leave removes the membership; it is a no-op when the connection is not a
// member of the room. It reports whether a removal happened.
func (r *Rooms) Leave(connID uuid.UUID, threadID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current[connID] != threadID {
		return false
	}
	r.removeLocked(connID, threadID)
	delete(r.current, connID)
	return true
}

// LeaveCurrent drops the connection from whatever room it occupies and
// returns that room id.
func (r *Rooms) LeaveCurrent(connID uuid.UUID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	threadID, ok := r.current[connID]
	if !ok {
		return "", false
	}
	r.removeLocked(connID, threadID)
	delete(r.current, connID)
	return threadID, true
}

func (r *Rooms) removeLocked(connID uuid.UUID, threadID string) {
	if set, ok := r.members[threadID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.members, threadID)
		}
	}
}

// Members returns a snapshot of the room's member connection ids. An
// unknown room is an empty room, not an error.
func (r *Rooms) Members(threadID string) []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.members[threadID]
	out := make([]uuid.UUID, 0, len(set))
	for connID := range set {
		out = append(out, connID)
	}
	return out
}

func (r *Rooms) CurrentRoom(connID uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	threadID, ok := r.current[connID]
	return threadID, ok
}

package realtime

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTypingTTL is how long a typing entry survives without a refresh.
// A client that disconnects mid-type never sends a stop signal; the entry
// expires on its own and the room is corrected.
const DefaultTypingTTL = 2 * time.Second

// Presence tracks per-room typing entries with expiry. Online status is not
// stored here: it is derived from room membership by the hub on demand, so
// it can never drift after missed events.
type Presence struct {
	typing *cache.Cache
}

// NewPresence builds the typing store. sweep controls how often lapsed
// entries are purged (and the correction broadcast fires).
func NewPresence(ttl, sweep time.Duration) *Presence {
	if ttl <= 0 {
		ttl = DefaultTypingTTL
	}
	if sweep <= 0 {
		sweep = 500 * time.Millisecond
	}
	return &Presence{typing: cache.New(ttl, sweep)}
}

// OnExpired registers the callback fired whenever a typing entry is removed,
// either by an explicit stop or by TTL expiry.
func (p *Presence) OnExpired(fn func(threadID, userName string)) {
	p.typing.OnEvicted(func(key string, _ interface{}) {
		threadID, userName, ok := splitTypingKey(key)
		if !ok {
			return
		}
		fn(threadID, userName)
	})
}

// SetTyping records or refreshes a typing entry, or removes it when
// isTyping is false. Removal fires the OnExpired callback.
func (p *Presence) SetTyping(threadID, userName string, isTyping bool) {
	key := typingKey(threadID, userName)
	if isTyping {
		p.typing.Set(key, userName, cache.DefaultExpiration)
		return
	}
	p.typing.Delete(key)
}

// ClearUser drops the typing entry for a user in a room, if any. Used on
// disconnect cleanup.
func (p *Presence) ClearUser(threadID, userName string) {
	p.typing.Delete(typingKey(threadID, userName))
}

// TypingUsers returns the names with a non-expired typing entry for the room.
func (p *Presence) TypingUsers(threadID string) []string {
	prefix := threadID + "\x00"
	var names []string
	for key, item := range p.typing.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if name, ok := item.Object.(string); ok {
			names = append(names, name)
		}
	}
	return names
}

// IsTyping reports whether the user currently has a live typing entry.
func (p *Presence) IsTyping(threadID, userName string) bool {
	_, found := p.typing.Get(typingKey(threadID, userName))
	return found
}

func typingKey(threadID, userName string) string {
	return threadID + "\x00" + userName
}

func splitTypingKey(key string) (threadID, userName string, ok bool) {
	i := strings.IndexByte(key, '\x00')
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPresenceSetAndClear(t *testing.T) {
	p := NewPresence(time.Minute, time.Minute)

	p.SetTyping("thread-a", "alice", true)
	assert.True(t, p.IsTyping("thread-a", "alice"))
	assert.Equal(t, []string{"alice"}, p.TypingUsers("thread-a"))
	assert.Empty(t, p.TypingUsers("thread-b"), "entries are scoped per room")

	p.SetTyping("thread-a", "alice", false)
	assert.False(t, p.IsTyping("thread-a", "alice"))
	assert.Empty(t, p.TypingUsers("thread-a"))
}

func TestPresenceEntryExpires(t *testing.T) {
	p := NewPresence(50*time.Millisecond, 20*time.Millisecond)

	var mu sync.Mutex
	var expired [][2]string
	p.OnExpired(func(threadID, userName string) {
		mu.Lock()
		expired = append(expired, [2]string{threadID, userName})
		mu.Unlock()
	})

	p.SetTyping("thread-a", "alice", true)
	assert.True(t, p.IsTyping("thread-a", "alice"))

	assert.Eventually(t, func() bool {
		return !p.IsTyping("thread-a", "alice")
	}, time.Second, 10*time.Millisecond, "entry must lapse without a refresh")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(expired) == 1 && expired[0] == [2]string{"thread-a", "alice"}
	}, time.Second, 10*time.Millisecond, "expiry fires the callback")
}

func TestPresenceRefreshExtendsEntry(t *testing.T) {
	p := NewPresence(80*time.Millisecond, 20*time.Millisecond)

	p.SetTyping("thread-a", "alice", true)
	for i := 0; i < 3; i++ {
		time.Sleep(40 * time.Millisecond)
		p.SetTyping("thread-a", "alice", true)
	}
	// Entry has been alive well past one TTL thanks to the refreshes.
	assert.True(t, p.IsTyping("thread-a", "alice"))
}

func TestPresenceClearUserFiresCallback(t *testing.T) {
	p := NewPresence(time.Minute, time.Minute)

	var mu sync.Mutex
	fired := 0
	p.OnExpired(func(threadID, userName string) {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	p.SetTyping("thread-a", "alice", true)
	p.ClearUser("thread-a", "alice")

	mu.Lock()
	assert.Equal(t, 1, fired)
	mu.Unlock()

	p.ClearUser("thread-a", "alice")
	mu.Lock()
	assert.Equal(t, 1, fired, "clearing an absent entry fires nothing")
	mu.Unlock()
}

package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testClient(userID uuid.UUID, userName string) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		UserName: userName,
		send:     make(chan []byte, 16),
	}
}

func TestRegistryMultipleConnectionsPerUser(t *testing.T) {
	reg := NewRegistry()
	userID := uuid.New()

	tab1 := testClient(userID, "alice")
	tab2 := testClient(userID, "alice")
	reg.Add(tab1)
	reg.Add(tab2)

	assert.Equal(t, 2, reg.Count())
	assert.True(t, reg.IsUserOnline(userID))
	assert.Len(t, reg.ConnectionsOf(userID), 2)

	reg.Remove(tab1.ID)
	assert.True(t, reg.IsUserOnline(userID), "still online through the second tab")

	reg.Remove(tab2.ID)
	assert.False(t, reg.IsUserOnline(userID))
	assert.Equal(t, 0, reg.Count())
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	c := testClient(uuid.New(), "bob")
	reg.Add(c)

	assert.Same(t, c, reg.Remove(c.ID))
	assert.Nil(t, reg.Remove(c.ID), "second remove returns nil")
	assert.Nil(t, reg.Remove(uuid.New()), "unknown conn returns nil")
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	c := testClient(uuid.New(), "carol")
	reg.Add(c)

	got, ok := reg.Lookup(c.ID)
	assert.True(t, ok)
	assert.Same(t, c, got)

	_, ok = reg.Lookup(uuid.New())
	assert.False(t, ok)
}

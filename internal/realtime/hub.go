package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"forum-live-be/internal/model"
	"forum-live-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "forum_cluster_events"

// Options tune the hub; zero values fall back to defaults.
type Options struct {
	TypingTTL   time.Duration
	TypingSweep time.Duration
	SendBuffer  int
}

// Hub owns the registry, room manager and presence tracker, and fans
// published messages and notifications out to live connections. One hub per
// process; cross-instance delivery goes over Redis pub/sub.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	presence *Presence

	// Serializes fan-out so per-room delivery order equals publish order.
	pubMu sync.Mutex

	rdb        *redis.Client
	instanceID string
	sendBuffer int
	logger     logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger, opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}
	h := &Hub{
		registry:   NewRegistry(),
		rooms:      NewRooms(),
		presence:   NewPresence(opts.TypingTTL, opts.TypingSweep),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		sendBuffer: opts.SendBuffer,
		logger:     log,
	}
	h.presence.OnExpired(func(threadID, userName string) {
		h.broadcastToRoom(threadID, Envelope{
			Event: EventUserTyping,
			Data:  TypingUpdate{UserName: userName, IsTyping: false},
		})
	})
	return h
}

// Run subscribes to the cluster channel. It blocks until ctx is cancelled;
// callers run it in its own goroutine. With no Redis configured the hub is
// single-instance and Run returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	h.subscribeToCluster(ctx)
}

// Register binds an authenticated connection.
func (h *Hub) Register(c *Client) {
	h.registry.Add(c)
	h.logger.Info("Hub", "Client registered", map[string]interface{}{
		"conn_id": c.ID, "user": c.UserName,
	})
}

// Unregister is idempotent. The cascade is synchronous: room membership,
// typing entries and the registry binding are gone before it returns, so no
// later presence read can observe a ghost connection.
func (h *Hub) Unregister(c *Client) {
	removed := h.registry.Remove(c.ID)
	if removed == nil {
		return
	}

	threadID, inRoom := h.rooms.LeaveCurrent(c.ID)
	if inRoom {
		h.presence.ClearUser(threadID, c.UserName)
		h.broadcastOnlineUsers(threadID)
	}
	c.closeSend()

	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
		"conn_id": c.ID, "user": c.UserName,
	})
}

// JoinThread moves the connection into the thread's room. Switching rooms is
// leave-then-join: both rooms get a presence update.
func (h *Hub) JoinThread(c *Client, threadID string) {
	previous := h.rooms.Join(c.ID, threadID)
	if previous != "" {
		h.presence.ClearUser(previous, c.UserName)
		h.broadcastOnlineUsers(previous)
	}
	h.broadcastOnlineUsers(threadID)
}

// LeaveThread drops the connection from its current room, if any.
func (h *Hub) LeaveThread(c *Client) {
	threadID, ok := h.rooms.LeaveCurrent(c.ID)
	if !ok {
		return
	}
	h.presence.ClearUser(threadID, c.UserName)
	h.broadcastOnlineUsers(threadID)
}

// SetTyping records the typing state and broadcasts the delta. The stop
// broadcast rides on the presence eviction callback so TTL expiry and
// explicit stops correct the room the same way.
func (h *Hub) SetTyping(c *Client, threadID string, isTyping bool) {
	if isTyping {
		h.presence.SetTyping(threadID, c.UserName, true)
		h.broadcastToRoom(threadID, Envelope{
			Event: EventUserTyping,
			Data:  TypingUpdate{UserName: c.UserName, IsTyping: true},
		})
		return
	}
	h.presence.SetTyping(threadID, c.UserName, false)
}

// PublishMessage fans a persisted reply out to the room's current members.
// Callers invoke it only after the durable write is confirmed.
func (h *Hub) PublishMessage(threadID string, reply model.Reply) {
	data, err := json.Marshal(Envelope{Event: EventNewMessage, Data: reply})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	h.pubMu.Lock()
	h.deliverToRoom(threadID, data)
	h.pubMu.Unlock()

	h.publishToCluster(clusterEvent{ThreadID: threadID, Message: data})
}

// Send pushes a notification to every live connection of the recipient,
// regardless of which room it occupies. Implements the dispatcher's
// delivery contract.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data, err := json.Marshal(Envelope{Event: EventNewNotification, Data: notification})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal notification", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, c := range h.registry.ConnectionsOf(userID) {
		h.deliver(c, data)
	}

	h.publishToCluster(clusterEvent{TargetUserID: userID.String(), Message: data})
}

// OnlineUsers derives the room's online set from authoritative membership.
// Distinct users, not connections: two tabs count once.
func (h *Hub) OnlineUsers(threadID string) []OnlineUser {
	seen := make(map[uuid.UUID]struct{})
	users := make([]OnlineUser, 0)
	for _, connID := range h.rooms.Members(threadID) {
		c, ok := h.registry.Lookup(connID)
		if !ok {
			continue
		}
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}
		users = append(users, OnlineUser{UserID: c.UserID, UserName: c.UserName})
	}
	return users
}

// TypingUsers returns the names with live typing entries for the room.
func (h *Hub) TypingUsers(threadID string) []string {
	return h.presence.TypingUsers(threadID)
}

// IsUserOnline reports whether the user has any live connection.
func (h *Hub) IsUserOnline(userID uuid.UUID) bool {
	return h.registry.IsUserOnline(userID)
}

// IsUserInRoom reports whether any of the user's connections is currently a
// member of the thread's room.
func (h *Hub) IsUserInRoom(userID uuid.UUID, threadID string) bool {
	for _, connID := range h.rooms.Members(threadID) {
		if c, ok := h.registry.Lookup(connID); ok && c.UserID == userID {
			return true
		}
	}
	return false
}

func (h *Hub) broadcastOnlineUsers(threadID string) {
	h.broadcastToRoom(threadID, Envelope{
		Event: EventOnlineUsers,
		Data:  h.OnlineUsers(threadID),
	})
}

func (h *Hub) broadcastToRoom(threadID string, envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal envelope", map[string]interface{}{"error": err.Error()})
		return
	}
	h.deliverToRoom(threadID, data)
}

func (h *Hub) deliverToRoom(threadID string, data []byte) {
	for _, connID := range h.rooms.Members(threadID) {
		if c, ok := h.registry.Lookup(connID); ok {
			h.deliver(c, data)
		}
	}
}

// deliver never blocks the fan-out on one slow member: a full send buffer
// drops the connection and lets the other members proceed.
func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{
			"conn_id": c.ID, "user": c.UserName,
		})
		go h.Unregister(c)
	}
}

// clusterEvent is the payload relayed between instances over Redis.
// ThreadID routes room fan-out; TargetUserID routes notification pushes.
type clusterEvent struct {
	Origin       string          `json:"origin"`
	ThreadID     string          `json:"thread_id,omitempty"`
	TargetUserID string          `json:"target_user_id,omitempty"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) publishToCluster(evt clusterEvent) {
	if h.rdb == nil {
		return
	}
	evt.Origin = h.instanceID
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Cluster publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToCluster(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterEvent([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleClusterEvent(payload []byte) {
	var evt clusterEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		h.logger.Warn("Hub", "Malformed cluster event", map[string]interface{}{"error": err.Error()})
		return
	}
	// Local members already got this push before it hit the wire.
	if evt.Origin == h.instanceID {
		return
	}

	switch {
	case evt.ThreadID != "":
		h.pubMu.Lock()
		h.deliverToRoom(evt.ThreadID, evt.Message)
		h.pubMu.Unlock()
	case evt.TargetUserID != "":
		userID, err := uuid.Parse(evt.TargetUserID)
		if err != nil {
			return
		}
		for _, c := range h.registry.ConnectionsOf(userID) {
			h.deliver(c, evt.Message)
		}
	}
}

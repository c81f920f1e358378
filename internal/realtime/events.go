package realtime

import "github.com/google/uuid"

// Outbound event names pushed to clients.
const (
	EventNewMessage      = "newMessage"
	EventOnlineUsers     = "onlineUsers"
	EventUserTyping      = "userTyping"
	EventNewNotification = "newNotification"
)

// Inbound event names accepted from clients.
const (
	eventJoinThread  = "joinThread"
	eventLeaveThread = "leaveThread"
	eventTyping      = "typing"
)

// inboundEvent is the tagged union read off the socket. Event selects the
// variant; the remaining fields are filled per variant.
type inboundEvent struct {
	Event    string `json:"event"`
	ThreadID string `json:"threadId"`
	IsTyping bool   `json:"isTyping"`
}

// Envelope wraps every outbound push.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type OnlineUser struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
}

type TypingUpdate struct {
	UserName string `json:"userName"`
	IsTyping bool   `json:"isTyping"`
}

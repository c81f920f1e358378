package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification kinds. unread -> read is the only state transition.
const (
	NotificationKindReply   = "reply"
	NotificationKindMention = "mention"
	NotificationKindLike    = "like"
)

// Notification stores the notification history for a user.
type Notification struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_unread,priority:1" json:"user_id"`
	ActorID     uuid.UUID      `gorm:"type:uuid;not null" json:"actor_id"`
	ActorName   string         `gorm:"type:varchar(50);not null" json:"actor_name"`
	Kind        string         `gorm:"type:varchar(20);not null;index" json:"kind"`
	Message     string         `gorm:"type:text;not null" json:"message"`
	ThreadID    uuid.UUID      `gorm:"type:uuid;not null" json:"thread_id"`
	ThreadTitle string         `gorm:"type:varchar(200);not null" json:"thread_title"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead      bool           `gorm:"default:false;index:idx_notifications_user_unread,priority:2" json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_user_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

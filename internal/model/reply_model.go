package model

import (
	"time"

	"github.com/google/uuid"
)

// ReplySnapshot is the denormalized quote of the message being answered.
// Name and content are copied at send time; later edits to the quoted
// message do not propagate here.
type ReplySnapshot struct {
	Name    string `gorm:"type:varchar(50)" json:"name"`
	Content string `gorm:"type:text" json:"content"`
}

type Reply struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ThreadID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_replies_thread_created,priority:1" json:"thread_id"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null" json:"author_id"`
	AuthorName string         `gorm:"type:varchar(50);not null" json:"author"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Image      *string        `gorm:"type:text" json:"image,omitempty"`
	ReplyingTo *ReplySnapshot `gorm:"embedded;embeddedPrefix:replying_to_" json:"replying_to,omitempty"`
	Likes      int64          `gorm:"default:0" json:"likes"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index:idx_replies_thread_created,priority:2" json:"created_at"`
}

func (Reply) TableName() string {
	return "replies"
}

// ReplyLike records a single like per user per reply.
type ReplyLike struct {
	ReplyID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"reply_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ReplyLike) TableName() string {
	return "reply_likes"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Thread struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title      string         `gorm:"type:varchar(200);not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Category   string         `gorm:"type:varchar(50);not null;index" json:"category"`
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorName string         `gorm:"type:varchar(50);not null" json:"author"`
	Image      *string        `gorm:"type:text" json:"image,omitempty"`
	Views      int64          `gorm:"default:0" json:"views"`
	Likes      int64          `gorm:"default:0" json:"likes"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Thread) TableName() string {
	return "threads"
}

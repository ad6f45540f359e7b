package models

import (
	"time"
)

// Post belongs to exactly one User. UserID and CreatedAt are write-once.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;<-:create" json:"created_at"`
	UserID    uint      `gorm:"not null;index;<-:create" json:"user_id"`

	// Only used by AutoMigrate to emit the foreign key; never preloaded.
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

package models

import "time"

// MaxTitleLength is the longest title, in characters, accepted for a new post.
const MaxTitleLength = 50

// Post represents a discussion thread opened by a user.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

package models

import "time"

// Comment is a message on a post. Top-level comments have no parent; replies
// point at another comment of the same post through ParentID.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	ParentID  *uint     `gorm:"index:idx_comments_parent_id" json:"parent_id"`
	// Replies is the one-level back-reference to comments answering this one.
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
}

// IsReply reports whether the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

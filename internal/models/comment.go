package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post in the Quill application.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"not null" json:"content"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	Post      Post           `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Author and PostRef are response projections filled from the preloaded
	// associations; they keep referenced entities narrow in API output.
	Author  *UserSummary `gorm:"-" json:"author,omitempty"`
	PostRef *PostSummary `gorm:"-" json:"post,omitempty"`
}

// Project fills the response projections from the preloaded associations.
func (c *Comment) Project() {
	if c.User.ID != 0 {
		s := c.User.Summary()
		c.Author = &s
	}
	if c.Post.ID != 0 {
		s := c.Post.Summary()
		c.PostRef = &s
	}
}

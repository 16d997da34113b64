package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog post in the Quill application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Author is the response projection filled from the preloaded User; the
	// full author record (email included) never serializes.
	Author *UserSummary `gorm:"-" json:"author,omitempty"`
}

// Project fills the author projection from the preloaded association.
func (p *Post) Project() {
	if p.User.ID != 0 {
		s := p.User.Summary()
		p.Author = &s
	}
}

// PostSummary is the projection of a post embedded in comment responses.
type PostSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Summary returns the narrow projection used when a post is referenced
// from another resource's response.
func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title}
}

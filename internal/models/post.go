// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a user-authored entry. The slug is derived from the body (or title
// when the body is empty) and is NOT unique; posts are addressed by the
// (id, slug) pair and a lookup fails unless both match.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `json:"title"`
	Body   string `gorm:"type:text;not null" json:"body"`
	Slug   string `gorm:"not null;index" json:"slug"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Voted indicates whether the requesting user already voted on this post (computed)
	Voted     bool           `gorm:"->" json:"voted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

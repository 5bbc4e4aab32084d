// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCommentBodyLen bounds comment bodies, in runes.
const MaxCommentBodyLen = 400

// Comment is a comment on a post. A reply is a comment whose ReplyToID points
// at another comment; that parent must belong to the same post. IsReply is
// true iff ReplyToID is set.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	ReplyToID *uint          `gorm:"index" json:"reply_to_id,omitempty"`
	IsReply   bool           `gorm:"not null;default:false" json:"is_reply"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

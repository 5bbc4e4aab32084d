package models

import "time"

// Vote records a user's endorsement of a post.
// The combination of UserID and PostID must be unique; inserts go through
// an atomic ON CONFLICT statement so concurrent duplicates cannot slip in.
// Votes are hard-deleted on unvote.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

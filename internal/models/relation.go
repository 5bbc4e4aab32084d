package models

import "time"

// Relation is a directed follow edge from one user to another.
// At most one edge may exist per (FromUserID, ToUserID) pair; like votes,
// inserts are atomic check-and-create. Rows are hard-deleted on unfollow.
type Relation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_relations_from_to" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;uniqueIndex:idx_relations_from_to" json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Relation) TableName() string {
	return "relations"
}

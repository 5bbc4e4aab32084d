// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"socialbase/internal/cache"
	"socialbase/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines the interface for vote (like) data operations.
type VoteRepository interface {
	// Add inserts the (user, post) vote. It reports false when the vote
	// already existed; the insert is a single atomic statement, never a
	// separate read followed by a write.
	Add(ctx context.Context, userID, postID uint) (bool, error)
	// Remove deletes the vote row, reporting false when none existed.
	Remove(ctx context.Context, userID, postID uint) (bool, error)
	Count(ctx context.Context, postID uint) (int64, error)
	Exists(ctx context.Context, userID, postID uint) (bool, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Add(ctx context.Context, userID, postID uint) (bool, error) {
	// ON CONFLICT DO NOTHING makes concurrent duplicate requests race-safe:
	// exactly one of them inserts a row.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO votes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

func (r *voteRepository) Remove(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

// Count reads through the like-count cache. Add and Remove invalidate the
// key, so the short TTL only papers over out-of-band writes.
func (r *voteRepository) Count(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.LikeCountKey(postID), &count, cache.LikeCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Vote{}).
			Where("post_id = ?", postID).
			Count(&count).Error
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *voteRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

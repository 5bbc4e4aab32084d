// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"socialbase/internal/models"

	"gorm.io/gorm"
)

// RelationRepository defines the interface for follow-edge data operations.
type RelationRepository interface {
	// Add inserts the follow edge, reporting false when it already existed.
	// Same atomic check-and-insert discipline as votes.
	Add(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	// Remove deletes the edge, reporting false when none existed.
	Remove(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	Exists(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Add(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO relations (from_user_id, to_user_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (from_user_id, to_user_id) DO NOTHING`,
		fromUserID, toUserID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Remove(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&models.Relation{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *relationRepository) Exists(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *relationRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("to_user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *relationRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Relation{}).
		Where("from_user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

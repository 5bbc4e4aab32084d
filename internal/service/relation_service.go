package service

import (
	"context"

	"socialbase/internal/middleware"
	"socialbase/internal/models"
	"socialbase/internal/repository"
)

// RelationService provides follow/unfollow mutation logic.
type RelationService struct {
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
}

// NewRelationService returns a new RelationService.
func NewRelationService(relationRepo repository.RelationRepository, userRepo repository.UserRepository) *RelationService {
	return &RelationService{
		relationRepo: relationRepo,
		userRepo:     userRepo,
	}
}

// Follow creates a follow edge from one user to another. Self-follow is
// rejected, and following the same user twice reports ALREADY_FOLLOWING.
func (s *RelationService) Follow(ctx context.Context, fromUserID, toUserID uint) error {
	if fromUserID == toUserID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return err
	}

	inserted, err := s.relationRepo.Add(ctx, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if !inserted {
		middleware.FollowConflicts.Inc()
		return models.NewAlreadyFollowingError()
	}
	return nil
}

func (s *RelationService) Unfollow(ctx context.Context, fromUserID, toUserID uint) error {
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return err
	}

	removed, err := s.relationRepo.Remove(ctx, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFollowingError()
	}
	return nil
}

package service

import (
	"context"

	"socialbase/internal/middleware"
	"socialbase/internal/models"
	"socialbase/internal/repository"
)

// VoteService provides vote (like) mutation logic. Uniqueness per
// (user, post) is enforced by the repository's atomic insert; this layer
// turns the outcome into the domain error.
type VoteService struct {
	voteRepo repository.VoteRepository
	postRepo repository.PostRepository
}

// NewVoteService returns a new VoteService.
func NewVoteService(voteRepo repository.VoteRepository, postRepo repository.PostRepository) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		postRepo: postRepo,
	}
}

func (s *VoteService) Vote(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}

	inserted, err := s.voteRepo.Add(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !inserted {
		middleware.VoteConflicts.Inc()
		return models.NewAlreadyVotedError()
	}
	return nil
}

func (s *VoteService) Unvote(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}

	removed, err := s.voteRepo.Remove(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotVotedError()
	}
	return nil
}

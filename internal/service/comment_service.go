package service

import (
	"context"
	"unicode/utf8"

	"socialbase/internal/models"
	"socialbase/internal/repository"
)

// CommentService provides comment and reply mutation logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	UserID    uint
	PostID    uint
	Body      string
	ReplyToID *uint
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment creates a top-level comment, or a reply when ReplyToID is set.
// A reply's target must be a comment on the same post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if utf8.RuneCountInString(in.Body) > models.MaxCommentBodyLen {
		return nil, models.NewValidationError("Comment too long (max 400 characters)")
	}

	comment := &models.Comment{
		Body:   in.Body,
		UserID: in.UserID,
		PostID: in.PostID,
	}

	if in.ReplyToID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ReplyToID)
		if err != nil {
			return nil, models.NewInvalidReplyTargetError()
		}
		if parent.PostID != in.PostID {
			return nil, models.NewInvalidReplyTargetError()
		}
		comment.ReplyToID = in.ReplyToID
		comment.IsReply = true
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment and its replies. Only the author may delete.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return comment, nil
}

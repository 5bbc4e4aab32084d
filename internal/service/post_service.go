// Package service contains the business logic gating every mutation:
// validation, ownership checks, and cross-entity consistency.
package service

import (
	"context"

	"socialbase/internal/models"
	"socialbase/internal/repository"
	"socialbase/internal/slug"
)

const (
	maxTitleLen = 100
	maxBodyLen  = 50000
)

// PostService provides post mutation logic: create, author-only update and
// delete. Deleting a post cascades to its comments and votes.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID uint
	Title  string
	Body   string
}

type UpdatePostInput struct {
	UserID uint
	PostID uint
	Title  string
	Body   string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostFields(title, body string) error {
	if body == "" {
		return models.NewValidationError("Body is required")
	}
	if len(body) > maxBodyLen {
		return models.NewValidationError("Body too long (max 50000 characters)")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:  in.Title,
		Body:   in.Body,
		Slug:   slug.FromContent(in.Body, in.Title),
		UserID: in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// UpdatePost edits the post in place and regenerates the slug from the new
// content. Only the author may edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}
	if err := validatePostFields(in.Title, in.Body); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Body = in.Body
	post.Slug = slug.FromContent(in.Body, in.Title)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes the post and everything hanging off it (comments,
// votes). Only the author may delete.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return nil, err
	}
	return post, nil
}

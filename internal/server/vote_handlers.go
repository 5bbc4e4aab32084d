package server

import (
	"github.com/gofiber/fiber/v2"
)

// VotePost handles POST /api/posts/:id/vote
func (s *Server) VotePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.voteService.Vote(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	count, err := s.voteRepo.Count(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Post liked",
		"like_count": count,
	})
}

// UnvotePost handles DELETE /api/posts/:id/vote
func (s *Server) UnvotePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.voteService.Unvote(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	count, err := s.voteRepo.Count(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Like removed",
		"like_count": count,
	})
}

// GetLikeCount handles GET /api/posts/:id/likes
func (s *Server) GetLikeCount(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.feedService.LikeCount(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"like_count": count})
}

// GetCanVote handles GET /api/posts/:id/can-vote.
// can_vote is true when the caller's vote already exists.
func (s *Server) GetCanVote(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	canVote, err := s.feedService.UserCanVote(ctx, userID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"can_vote": canVote})
}

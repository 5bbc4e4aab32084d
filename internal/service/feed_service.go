package service

import (
	"context"

	"socialbase/internal/models"
	"socialbase/internal/repository"
)

// FeedService answers the read-side questions: the global feed, post detail,
// comment threads, vote state, and user profiles.
type FeedService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	voteRepo     repository.VoteRepository
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
}

type ListFeedInput struct {
	Search        string
	Limit         int
	Offset        int
	CurrentUserID uint
}

// Profile is a user page: the user, their follow counts, and whether the
// viewer already follows them.
type Profile struct {
	User           *models.User `json:"user"`
	FollowerCount  int64        `json:"follower_count"`
	FollowingCount int64        `json:"following_count"`
	IsFollowing    bool         `json:"is_following"`
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	voteRepo repository.VoteRepository,
	relationRepo repository.RelationRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
	}
}

// ListFeed returns posts newest first. When Search is set, only posts whose
// body contains it (case-sensitive) are returned.
func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) ([]*models.Post, error) {
	return s.postRepo.List(ctx, in.Search, in.Limit, in.Offset, in.CurrentUserID)
}

// GetPostDetail looks a post up by both id and slug. A stale or mismatched
// slug is a NotFound, same as an unknown id.
func (s *FeedService) GetPostDetail(ctx context.Context, id uint, slug string, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByIDAndSlug(ctx, id, slug, currentUserID)
}

// ListComments returns the top-level comments of a post, oldest first.
func (s *FeedService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListTopLevel(ctx, postID)
}

// ListReplies returns the replies to a comment, oldest first.
func (s *FeedService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID)
}

func (s *FeedService) LikeCount(ctx context.Context, postID uint) (int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return 0, err
	}
	return s.voteRepo.Count(ctx, postID)
}

// UserCanVote reports whether a vote by the user already exists on the post.
// Despite the name, true means the vote has been cast. Clients use the answer
// to gate the like action.
func (s *FeedService) UserCanVote(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, err
	}
	return s.voteRepo.Exists(ctx, userID, postID)
}

// GetProfile assembles a user page by username. currentUserID may be zero
// for anonymous viewers.
func (s *FeedService) GetProfile(ctx context.Context, username string, currentUserID uint) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	followers, err := s.relationRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.relationRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if currentUserID != 0 && currentUserID != user.ID {
		isFollowing, err = s.relationRepo.Exists(ctx, currentUserID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		User:           user,
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// GetProfileFeed returns a user's own posts, newest first.
func (s *FeedService) GetProfileFeed(ctx context.Context, username string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.GetByUserID(ctx, user.ID, limit, offset, currentUserID)
}

// IsFollowing reports whether fromUserID follows toUserID.
func (s *FeedService) IsFollowing(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	return s.relationRepo.Exists(ctx, fromUserID, toUserID)
}

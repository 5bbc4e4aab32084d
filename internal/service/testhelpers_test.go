package service

import (
	"context"
	"testing"

	"socialbase/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub repositories with overridable function fields. Unset functions fail
// the test if called, which keeps each test honest about what it exercises.

type stubPostRepo struct {
	t                 *testing.T
	createFn         func(ctx context.Context, post *models.Post) error
	getByIDFn        func(ctx context.Context, id, currentUserID uint) (*models.Post, error)
	getByIDAndSlugFn func(ctx context.Context, id uint, slug string, currentUserID uint) (*models.Post, error)
	listFn           func(ctx context.Context, search string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	getByUserIDFn    func(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	updateFn         func(ctx context.Context, post *models.Post) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	require.NotNil(s.t, s.createFn, "unexpected call to PostRepository.Create")
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	require.NotNil(s.t, s.getByIDFn, "unexpected call to PostRepository.GetByID")
	return s.getByIDFn(ctx, id, currentUserID)
}

func (s *stubPostRepo) GetByIDAndSlug(ctx context.Context, id uint, slug string, currentUserID uint) (*models.Post, error) {
	require.NotNil(s.t, s.getByIDAndSlugFn, "unexpected call to PostRepository.GetByIDAndSlug")
	return s.getByIDAndSlugFn(ctx, id, slug, currentUserID)
}

func (s *stubPostRepo) List(ctx context.Context, search string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	require.NotNil(s.t, s.listFn, "unexpected call to PostRepository.List")
	return s.listFn(ctx, search, limit, offset, currentUserID)
}

func (s *stubPostRepo) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	require.NotNil(s.t, s.getByUserIDFn, "unexpected call to PostRepository.GetByUserID")
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	require.NotNil(s.t, s.updateFn, "unexpected call to PostRepository.Update")
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	require.NotNil(s.t, s.deleteFn, "unexpected call to PostRepository.Delete")
	return s.deleteFn(ctx, id)
}

type stubCommentRepo struct {
	t              *testing.T
	createFn       func(ctx context.Context, comment *models.Comment) error
	getByIDFn      func(ctx context.Context, id uint) (*models.Comment, error)
	listTopLevelFn func(ctx context.Context, postID uint) ([]*models.Comment, error)
	listRepliesFn  func(ctx context.Context, commentID uint) ([]*models.Comment, error)
	deleteFn       func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	require.NotNil(s.t, s.createFn, "unexpected call to CommentRepository.Create")
	return s.createFn(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	require.NotNil(s.t, s.getByIDFn, "unexpected call to CommentRepository.GetByID")
	return s.getByIDFn(ctx, id)
}

func (s *stubCommentRepo) ListTopLevel(ctx context.Context, postID uint) ([]*models.Comment, error) {
	require.NotNil(s.t, s.listTopLevelFn, "unexpected call to CommentRepository.ListTopLevel")
	return s.listTopLevelFn(ctx, postID)
}

func (s *stubCommentRepo) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	require.NotNil(s.t, s.listRepliesFn, "unexpected call to CommentRepository.ListReplies")
	return s.listRepliesFn(ctx, commentID)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	require.NotNil(s.t, s.deleteFn, "unexpected call to CommentRepository.Delete")
	return s.deleteFn(ctx, id)
}

type stubVoteRepo struct {
	t        *testing.T
	addFn    func(ctx context.Context, userID, postID uint) (bool, error)
	removeFn func(ctx context.Context, userID, postID uint) (bool, error)
	countFn  func(ctx context.Context, postID uint) (int64, error)
	existsFn func(ctx context.Context, userID, postID uint) (bool, error)
}

func (s *stubVoteRepo) Add(ctx context.Context, userID, postID uint) (bool, error) {
	require.NotNil(s.t, s.addFn, "unexpected call to VoteRepository.Add")
	return s.addFn(ctx, userID, postID)
}

func (s *stubVoteRepo) Remove(ctx context.Context, userID, postID uint) (bool, error) {
	require.NotNil(s.t, s.removeFn, "unexpected call to VoteRepository.Remove")
	return s.removeFn(ctx, userID, postID)
}

func (s *stubVoteRepo) Count(ctx context.Context, postID uint) (int64, error) {
	require.NotNil(s.t, s.countFn, "unexpected call to VoteRepository.Count")
	return s.countFn(ctx, postID)
}

func (s *stubVoteRepo) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	require.NotNil(s.t, s.existsFn, "unexpected call to VoteRepository.Exists")
	return s.existsFn(ctx, userID, postID)
}

type stubRelationRepo struct {
	t                *testing.T
	addFn            func(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	removeFn         func(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	existsFn         func(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	countFollowersFn func(ctx context.Context, userID uint) (int64, error)
	countFollowingFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *stubRelationRepo) Add(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	require.NotNil(s.t, s.addFn, "unexpected call to RelationRepository.Add")
	return s.addFn(ctx, fromUserID, toUserID)
}

func (s *stubRelationRepo) Remove(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	require.NotNil(s.t, s.removeFn, "unexpected call to RelationRepository.Remove")
	return s.removeFn(ctx, fromUserID, toUserID)
}

func (s *stubRelationRepo) Exists(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	require.NotNil(s.t, s.existsFn, "unexpected call to RelationRepository.Exists")
	return s.existsFn(ctx, fromUserID, toUserID)
}

func (s *stubRelationRepo) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	require.NotNil(s.t, s.countFollowersFn, "unexpected call to RelationRepository.CountFollowers")
	return s.countFollowersFn(ctx, userID)
}

func (s *stubRelationRepo) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	require.NotNil(s.t, s.countFollowingFn, "unexpected call to RelationRepository.CountFollowing")
	return s.countFollowingFn(ctx, userID)
}

type stubUserRepo struct {
	t               *testing.T
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	require.NotNil(s.t, s.createFn, "unexpected call to UserRepository.Create")
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	require.NotNil(s.t, s.getByIDFn, "unexpected call to UserRepository.GetByID")
	return s.getByIDFn(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	require.NotNil(s.t, s.getByEmailFn, "unexpected call to UserRepository.GetByEmail")
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	require.NotNil(s.t, s.getByUsernameFn, "unexpected call to UserRepository.GetByUsername")
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	require.NotNil(s.t, s.listFn, "unexpected call to UserRepository.List")
	return s.listFn(ctx, limit, offset)
}

// assertAppErrorCode fails unless err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"socialbase/internal/models"
	"socialbase/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options tunes the shape of the generated data set.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	MaxDays         int
	Password        string
}

// DefaultOptions returns a small but connected data set.
func DefaultOptions() Options {
	return Options{
		Users:           10,
		PostsPerUser:    5,
		CommentsPerPost: 3,
		MaxDays:         90,
		Password:        "password123",
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	now := time.Now().UnixNano()
	gofakeit.Seed(now)
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(now))}
}

// CreateUser persists a user with a faked identity and the shared seed password.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Bio:      gofakeit.Sentence(8),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post with a realistic created_at spread and a slug
// derived from the body, matching production behavior.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	body := gofakeit.Paragraph(1, 3, 8, "\n")
	post := &models.Post{
		Title:  gofakeit.Sentence(5),
		Body:   body,
		Slug:   slug.FromContent(body, ""),
		UserID: user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment, optionally as a reply to parent.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Body:   gofakeit.Sentence(12),
		UserID: user.ID,
		PostID: post.ID,
	}
	if parent != nil {
		comment.ReplyToID = &parent.ID
		comment.IsReply = true
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateVote persists a vote, ignoring duplicates.
func (f *Factory) CreateVote(userID, postID uint) error {
	return f.db.Exec(
		`INSERT INTO votes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	).Error
}

// CreateRelation persists a follow edge, ignoring duplicates.
func (f *Factory) CreateRelation(fromUserID, toUserID uint) error {
	if fromUserID == toUserID {
		return nil
	}
	return f.db.Exec(
		`INSERT INTO relations (from_user_id, to_user_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (from_user_id, to_user_id) DO NOTHING`,
		fromUserID, toUserID,
	).Error
}

// Run generates a connected data set: users, posts, comment threads, votes,
// and follow relations between the users.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		var parent *models.Comment
		for i := 0; i < opts.CommentsPerPost; i++ {
			author := users[f.rng.Intn(len(users))]
			comment, err := f.CreateComment(author, post, parent)
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			// occasionally thread the next comment under this one
			if f.rng.Intn(3) == 0 {
				parent = comment
			} else {
				parent = nil
			}
		}
	}

	for _, post := range posts {
		voters := f.rng.Intn(len(users) + 1)
		for i := 0; i < voters; i++ {
			if err := f.CreateVote(users[i].ID, post.ID); err != nil {
				return fmt.Errorf("seed vote: %w", err)
			}
		}
	}

	for _, from := range users {
		follows := f.rng.Intn(len(users))
		for i := 0; i < follows; i++ {
			if err := f.CreateRelation(from.ID, users[i].ID); err != nil {
				return fmt.Errorf("seed relation: %w", err)
			}
		}
	}

	slog.Info("seed complete",
		"users", len(users),
		"posts", len(posts),
	)
	return nil
}

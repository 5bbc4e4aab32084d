package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialbase/internal/config"
	"socialbase/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "integration-test-secret",
		Port:      "8480",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app, srv
}

// doJSON performs a request against the test app and decodes the response body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		// Arrays are decoded by doJSONList instead.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// signupUser registers a user and returns its token and ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusCreated, status, "signup failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

// createPost creates a post through the API and returns its decoded body.
func createPost(t *testing.T, app *fiber.App, token, title, body string) map[string]any {
	t.Helper()
	status, decoded := doJSON(t, app, http.MethodPost, "/api/posts/", token, fiber.Map{
		"title": title,
		"body":  body,
	})
	require.Equal(t, http.StatusCreated, status, "create post failed: %v", decoded)
	return decoded
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])

	status, _ = doJSON(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestSignupAndLogin(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := signupUser(t, app, "alice")
	assert.NotEmpty(t, token)

	t.Run("Duplicate email rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
			"username": "alice2",
			"email":    "alice@example.com",
			"password": "password1",
		})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("Duplicate username rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
			"username": "alice",
			"email":    "other@example.com",
			"password": "password1",
		})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("Login", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "alice@example.com",
			"password": "password1",
		})
		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "alice@example.com",
			"password": "wrong-password1",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Weak password rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
			"username": "weakling",
			"email":    "weak@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAuthRequired(t *testing.T) {
	app, _ := setupTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/posts/", "", fiber.Map{
		"title": "T", "body": "B",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/posts/", "not-a-token", fiber.Map{
		"title": "T", "body": "B",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPostLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	post := createPost(t, app, aliceToken, "My Post", "Hello World! This is a long body of text")
	postID := uint(post["id"].(float64))
	assert.Equal(t, "hello-world-this-is-a-long-bo", post["slug"])

	detailPath := func(slug string) string {
		return fmt.Sprintf("/api/posts/%d/%s", postID, slug)
	}

	t.Run("Detail by id and slug", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, detailPath("hello-world-this-is-a-long-bo"), "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "My Post", body["title"])
	})

	t.Run("Wrong slug is a 404", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, detailPath("some-other-slug"), "", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("Non-author cannot update", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", postID), bobToken, fiber.Map{
			"title": "Hijacked", "body": "mine now",
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "UNAUTHORIZED", body["code"])

		// Unchanged.
		status, detail := doJSON(t, app, http.MethodGet, detailPath("hello-world-this-is-a-long-bo"), "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "My Post", detail["title"])
	})

	t.Run("Author update regenerates slug", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%d", postID), aliceToken, fiber.Map{
			"title": "Edited", "body": "Totally new content now",
		})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "totally-new-content-now", body["slug"])

		// The old slug no longer resolves.
		status, _ = doJSON(t, app, http.MethodGet, detailPath("hello-world-this-is-a-long-bo"), "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Non-author cannot delete", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bobToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Author deletes", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)

		status, _ = doJSON(t, app, http.MethodGet, detailPath("totally-new-content-now"), "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestVoteFlow(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	post := createPost(t, app, aliceToken, "Votable", "please like this")
	votePath := fmt.Sprintf("/api/posts/%.0f/vote", post["id"])

	status, body := doJSON(t, app, http.MethodPost, votePath, bobToken, nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(1), body["like_count"])

	t.Run("Double vote is rejected and the count stays at one", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, votePath, bobToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "ALREADY_VOTED", body["code"])

		status, likes := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%.0f/likes", post["id"]), "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), likes["like_count"])
	})

	t.Run("Can-vote reports the existing vote", func(t *testing.T) {
		// can_vote is true once the vote exists and false before.
		status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%.0f/can-vote", post["id"]), bobToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["can_vote"])

		status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%.0f/can-vote", post["id"]), aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["can_vote"])
	})

	t.Run("Unvote", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodDelete, votePath, bobToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(0), body["like_count"])

		status, body = doJSON(t, app, http.MethodDelete, votePath, bobToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "NOT_VOTED", body["code"])
	})

	t.Run("Vote on a missing post", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/posts/99999/vote", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCommentFlow(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	post := createPost(t, app, aliceToken, "Discussed", "tell me what you think")
	otherPost := createPost(t, app, aliceToken, "Unrelated", "different topic")
	commentsPath := fmt.Sprintf("/api/posts/%.0f/comments", post["id"])

	status, comment := doJSON(t, app, http.MethodPost, commentsPath, bobToken, fiber.Map{
		"body": "great post",
	})
	require.Equal(t, http.StatusCreated, status)
	commentID := comment["id"].(float64)
	assert.Equal(t, false, comment["is_reply"])

	t.Run("Reply to a comment on the same post", func(t *testing.T) {
		status, reply := doJSON(t, app, http.MethodPost, commentsPath, aliceToken, fiber.Map{
			"body":        "thanks",
			"reply_to_id": commentID,
		})
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, true, reply["is_reply"])

		status, replies := doJSONList(t, app, http.MethodGet, fmt.Sprintf("/api/comments/%.0f/replies", commentID), "")
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, replies, 1)
		assert.Equal(t, "thanks", replies[0]["body"])
	})

	t.Run("Cross-post reply rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/%.0f/comments", otherPost["id"])
		status, body := doJSON(t, app, http.MethodPost, path, bobToken, fiber.Map{
			"body":        "wrong thread",
			"reply_to_id": commentID,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_REPLY_TARGET", body["code"])
	})

	t.Run("Top-level listing excludes replies", func(t *testing.T) {
		status, comments := doJSONList(t, app, http.MethodGet, commentsPath, "")
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, comments, 1)
		assert.Equal(t, "great post", comments[0]["body"])
	})

	t.Run("Non-author cannot delete", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%.0f", commentID), aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Author deletes and replies go too", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/comments/%.0f", commentID), bobToken, nil)
		assert.Equal(t, http.StatusOK, status)

		status, comments := doJSONList(t, app, http.MethodGet, commentsPath, "")
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, comments)
	})
}

func TestFollowFlow(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, aliceID := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")
	_ = aliceID

	followPath := fmt.Sprintf("/api/users/%d/follow", bobID)

	status, _ := doJSON(t, app, http.MethodPost, followPath, aliceToken, nil)
	assert.Equal(t, http.StatusCreated, status)

	t.Run("Double follow rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, followPath, aliceToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "ALREADY_FOLLOWING", body["code"])
	})

	t.Run("Profile reflects the follow", func(t *testing.T) {
		status, profile := doJSON(t, app, http.MethodGet, "/api/users/bob/profile", aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), profile["follower_count"])
		assert.Equal(t, true, profile["is_following"])
	})

	t.Run("Anonymous profile view", func(t *testing.T) {
		status, profile := doJSON(t, app, http.MethodGet, "/api/users/bob/profile", "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, profile["is_following"])
	})

	t.Run("Self-follow rejected", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", bobID), bobToken, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("Unfollow", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete, followPath, aliceToken, nil)
		assert.Equal(t, http.StatusOK, status)

		status, body := doJSON(t, app, http.MethodDelete, followPath, aliceToken, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "NOT_FOLLOWING", body["code"])
	})

	t.Run("Follow a missing user", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/users/99999/follow", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestFeedAndSearch(t *testing.T) {
	app, _ := setupTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")

	createPost(t, app, aliceToken, "First", "Golang is great for services")
	createPost(t, app, aliceToken, "Second", "completely different body")

	t.Run("Feed lists newest first", func(t *testing.T) {
		status, posts := doJSONList(t, app, http.MethodGet, "/api/posts/", "")
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, posts, 2)
		assert.Equal(t, "Second", posts[0]["title"])
		assert.Equal(t, "First", posts[1]["title"])
	})

	t.Run("Search matches substring case-sensitively", func(t *testing.T) {
		status, posts := doJSONList(t, app, http.MethodGet, "/api/posts/?search=Golang", "")
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, posts, 1)
		assert.Equal(t, "First", posts[0]["title"])

		status, posts = doJSONList(t, app, http.MethodGet, "/api/posts/?search=golang", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, posts)
	})

	t.Run("Profile feed only lists the owner's posts", func(t *testing.T) {
		bobToken, _ := signupUser(t, app, "bob")
		createPost(t, app, bobToken, "Bob post", "bob writes too")

		status, posts := doJSONList(t, app, http.MethodGet, "/api/users/bob/posts", "")
		assert.Equal(t, http.StatusOK, status)
		require.Len(t, posts, 1)
		assert.Equal(t, "Bob post", posts[0]["title"])
	})
}

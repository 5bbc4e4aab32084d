package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix      = "post:%d"
	LikeCountKeyPrefix = "post:%d:likes"
	FeedFirstPageKey   = "feed:first"
	UserKeyPrefix      = "user:%d"
)

const (
	PostTTL      = 10 * time.Minute
	LikeCountTTL = 30 * time.Second
	FeedTTL      = 1 * time.Minute
	UserTTL      = 5 * time.Minute
)

// FeedFirstPageLimit is the page size cached under FeedFirstPageKey. Requests
// with any other limit, offset, search term or viewer go straight to the
// database.
const FeedFirstPageLimit = 20

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func LikeCountKey(postID uint) string {
	return fmt.Sprintf(LikeCountKeyPrefix, postID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops every cache entry derived from the post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), LikeCountKey(postID), FeedFirstPageKey)
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedFirstPageKey)
}

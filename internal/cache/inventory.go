package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/middleware"
	"sanaalens/internal/observability"
)

// Cache TTLs. Post content changes rarely, trending and category lists
// tolerate a little staleness.
const (
	PostTTL       = 5 * time.Minute
	UserTTL       = 10 * time.Minute
	TrendingTTL   = 2 * time.Minute
	CategoriesTTL = 15 * time.Minute
)

// PostKey returns the cache key for a post by ID.
func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}

// PostSlugKey returns the cache key for a post by slug.
func PostSlugKey(slug string) string {
	return fmt.Sprintf("post:slug:%s", slug)
}

// UserKey returns the cache key for a user profile.
func UserKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// TrendingKey is the cache key for the trending post list.
const TrendingKey = "posts:trending"

// CategoriesKey is the cache key for the distinct category list.
const CategoriesKey = "posts:categories"

// viewedKey identifies one (post, viewer) pair. Markers have no TTL: a
// view is counted once per viewer for the lifetime of the store, matching
// the once-per-browser semantics of the frontend.
func viewedKey(postID uint, viewer string) string {
	return fmt.Sprintf("viewed:post:%d:%s", postID, viewer)
}

// MarkViewed records that viewer has seen postID. Returns true when this
// is the first view, false when the marker already existed. Redis being
// down fails open: the view counts, which at worst overcounts rather than
// silently dropping engagement.
func MarkViewed(ctx context.Context, rdb *redis.Client, postID uint, viewer string) bool {
	if rdb == nil {
		return true
	}
	first, err := rdb.SetNX(ctx, viewedKey(postID, viewer), 1, 0).Result()
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("setnx").Inc()
		middleware.Logger.WarnContext(ctx, "viewed marker check failed, counting view", "post_id", postID, "error", err)
		return true
	}
	return first
}

// ClearViewed removes a viewer's marker so the view can be retried. Used
// when the increment behind a freshly-claimed marker fails; a marker must
// only survive a view that was actually issued.
func ClearViewed(ctx context.Context, rdb *redis.Client, postID uint, viewer string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, viewedKey(postID, viewer)).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "viewed marker rollback failed", "post_id", postID, "error", err)
	}
}

// InvalidatePost drops the cached copies of a post.
func InvalidatePost(ctx context.Context, rdb *redis.Client, postID uint, slug string) {
	keys := []string{PostKey(postID)}
	if slug != "" {
		keys = append(keys, PostSlugKey(slug))
	}
	Invalidate(ctx, rdb, keys...)
}

// InvalidateUser drops the cached copy of a user profile.
func InvalidateUser(ctx context.Context, rdb *redis.Client, userID uint) {
	Invalidate(ctx, rdb, UserKey(userID))
}

// Package service contains the application's business logic.
package service

import (
	"context"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/cache"
	"sanaalens/internal/middleware"
	"sanaalens/internal/models"
	"sanaalens/internal/observability"
	"sanaalens/internal/repository"
)

// LikeState is the authoritative like state of a post for one reader,
// returned after every toggle so the client renders what the server
// decided rather than what it guessed.
type LikeState struct {
	PostID uint  `json:"post_id"`
	Liked  bool  `json:"liked"`
	Likes  int64 `json:"likes"`
}

// BookmarkState mirrors LikeState for bookmarks.
type BookmarkState struct {
	PostID     uint `json:"post_id"`
	Bookmarked bool `json:"bookmarked"`
}

// EngagementService implements view counting, likes and bookmarks.
type EngagementService struct {
	posts      repository.PostRepository
	engagement repository.EngagementRepository
	rdb        *redis.Client
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(posts repository.PostRepository, engagement repository.EngagementRepository, rdb *redis.Client) *EngagementService {
	return &EngagementService{posts: posts, engagement: engagement, rdb: rdb}
}

// RecordView counts one view of a post per viewer. The viewer key is an
// opaque per-browser token; repeat views from the same viewer are
// ignored. Returns whether the view was counted.
//
// The marker claim and the increment must end up consistent: a marker
// only sticks once the increment was actually issued, so a transient
// database failure leaves the view retryable instead of swallowed.
func (s *EngagementService) RecordView(ctx context.Context, postID uint, viewer string) (bool, error) {
	if !cache.MarkViewed(ctx, s.rdb, postID, viewer) {
		return false, nil
	}

	if err := s.posts.EnsureStub(ctx, postID); err != nil {
		cache.ClearViewed(ctx, s.rdb, postID, viewer)
		return false, err
	}
	if err := s.posts.IncrementViews(ctx, postID); err != nil {
		cache.ClearViewed(ctx, s.rdb, postID, viewer)
		return false, err
	}

	cache.InvalidatePost(ctx, s.rdb, postID, "")
	observability.ViewsRecordedTotal.Inc()
	middleware.Logger.DebugContext(ctx, "view recorded", "post_id", postID)
	return true, nil
}

// ToggleLike flips the reader's like on a post. The new state is derived
// from what the database actually did, never from client input: liking an
// already-liked post and unliking a never-liked post are both no-ops that
// report the current state.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeState, error) {
	if err := s.posts.EnsureStub(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.engagement.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if _, err := s.engagement.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.engagement.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	likes, err := s.engagement.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, s.rdb, postID, "")
	return &LikeState{PostID: postID, Liked: !liked, Likes: likes}, nil
}

// LikeStatus reports the reader's current like state without changing it.
func (s *EngagementService) LikeStatus(ctx context.Context, userID, postID uint) (*LikeState, error) {
	liked, err := s.engagement.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	likes, err := s.engagement.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeState{PostID: postID, Liked: liked, Likes: likes}, nil
}

// ToggleBookmark flips the reader's bookmark on a post.
func (s *EngagementService) ToggleBookmark(ctx context.Context, userID, postID uint) (*BookmarkState, error) {
	if err := s.posts.EnsureStub(ctx, postID); err != nil {
		return nil, err
	}

	bookmarked, err := s.engagement.IsBookmarked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if bookmarked {
		if _, err := s.engagement.Unbookmark(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.engagement.Bookmark(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	return &BookmarkState{PostID: postID, Bookmarked: !bookmarked}, nil
}

// BookmarkedPosts returns the reader's saved posts, most recently saved
// first. Posts that have since been unpublished are silently omitted.
func (s *EngagementService) BookmarkedPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	ids, err := s.engagement.ListBookmarkedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Bookmarked = true
	}
	return posts, nil
}

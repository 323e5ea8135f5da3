package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngagementStore keeps like and bookmark state in memory so toggle
// sequences exercise the real derive-then-flip logic.
type fakeEngagementStore struct {
	engagementRepoStub
	likes     map[[2]uint]bool
	bookmarks map[[2]uint]bool
	likeCount int64
}

func newFakeEngagementStore() *fakeEngagementStore {
	f := &fakeEngagementStore{
		likes:     make(map[[2]uint]bool),
		bookmarks: make(map[[2]uint]bool),
	}
	f.likeFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		key := [2]uint{userID, postID}
		if f.likes[key] {
			return false, nil
		}
		f.likes[key] = true
		f.likeCount++
		return true, nil
	}
	f.unlikeFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		key := [2]uint{userID, postID}
		if !f.likes[key] {
			return false, nil
		}
		delete(f.likes, key)
		f.likeCount--
		return true, nil
	}
	f.isLikedFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		return f.likes[[2]uint{userID, postID}], nil
	}
	f.likeCountFn = func(ctx context.Context, postID uint) (int64, error) {
		return f.likeCount, nil
	}
	f.bookmarkFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		key := [2]uint{userID, postID}
		if f.bookmarks[key] {
			return false, nil
		}
		f.bookmarks[key] = true
		return true, nil
	}
	f.unbookmarkFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		key := [2]uint{userID, postID}
		if !f.bookmarks[key] {
			return false, nil
		}
		delete(f.bookmarks, key)
		return true, nil
	}
	f.isBookmarkedFn = func(ctx context.Context, userID, postID uint) (bool, error) {
		return f.bookmarks[[2]uint{userID, postID}], nil
	}
	return f
}

func TestToggleLike(t *testing.T) {
	t.Parallel()

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		t.Parallel()

		store := newFakeEngagementStore()
		svc := NewEngagementService(&postRepoStub{}, store, nil)

		first, err := svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.True(t, first.Liked)
		assert.Equal(t, int64(1), first.Likes)

		second, err := svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.False(t, second.Liked)
		assert.Equal(t, int64(0), second.Likes)
	})

	t.Run("two readers like independently", func(t *testing.T) {
		t.Parallel()

		store := newFakeEngagementStore()
		svc := NewEngagementService(&postRepoStub{}, store, nil)

		_, err := svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		state, err := svc.ToggleLike(context.Background(), 2, 10)
		require.NoError(t, err)

		assert.True(t, state.Liked)
		assert.Equal(t, int64(2), state.Likes)

		// Reader 1 unliking leaves reader 2's like intact.
		state, err = svc.ToggleLike(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.False(t, state.Liked)
		assert.Equal(t, int64(1), state.Likes)
	})

	t.Run("ensures the post row before mutating", func(t *testing.T) {
		t.Parallel()

		ensured := []uint{}
		posts := &postRepoStub{
			ensureStubFn: func(ctx context.Context, id uint) error {
				ensured = append(ensured, id)
				return nil
			},
		}
		svc := NewEngagementService(posts, newFakeEngagementStore(), nil)

		_, err := svc.ToggleLike(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, []uint{42}, ensured)
	})
}

func TestToggleBookmark(t *testing.T) {
	t.Parallel()

	store := newFakeEngagementStore()
	svc := NewEngagementService(&postRepoStub{}, store, nil)

	first, err := svc.ToggleBookmark(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, first.Bookmarked)

	second, err := svc.ToggleBookmark(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, second.Bookmarked)
}

func TestRecordView(t *testing.T) {
	t.Parallel()

	// With no Redis the marker check fails open and every view counts.
	t.Run("counts the view without a marker store", func(t *testing.T) {
		t.Parallel()

		incremented := 0
		posts := &postRepoStub{
			incrementViewsFn: func(ctx context.Context, id uint) error {
				incremented++
				return nil
			},
		}
		svc := NewEngagementService(posts, &engagementRepoStub{}, nil)

		counted, err := svc.RecordView(context.Background(), 10, "viewer-abc")
		require.NoError(t, err)
		assert.True(t, counted)
		assert.Equal(t, 1, incremented)
	})

	t.Run("second view from the same viewer is not counted", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		incremented := 0
		posts := &postRepoStub{
			incrementViewsFn: func(ctx context.Context, id uint) error {
				incremented++
				return nil
			},
		}
		svc := NewEngagementService(posts, &engagementRepoStub{}, rdb)

		counted, err := svc.RecordView(context.Background(), 10, "viewer-abc")
		require.NoError(t, err)
		assert.True(t, counted)

		counted, err = svc.RecordView(context.Background(), 10, "viewer-abc")
		require.NoError(t, err)
		assert.False(t, counted)
		assert.Equal(t, 1, incremented, "repeat view must not reach the counter")

		// A different viewer of the same post still counts.
		counted, err = svc.RecordView(context.Background(), 10, "viewer-def")
		require.NoError(t, err)
		assert.True(t, counted)
		assert.Equal(t, 2, incremented)
	})

	t.Run("failed increment leaves the view retryable", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		attempts := 0
		posts := &postRepoStub{
			incrementViewsFn: func(ctx context.Context, id uint) error {
				attempts++
				if attempts == 1 {
					return errors.New("connection reset")
				}
				return nil
			},
		}
		svc := NewEngagementService(posts, &engagementRepoStub{}, rdb)

		_, err := svc.RecordView(context.Background(), 10, "viewer-abc")
		require.Error(t, err)

		// The marker was rolled back, so the retry goes through.
		counted, err := svc.RecordView(context.Background(), 10, "viewer-abc")
		require.NoError(t, err)
		assert.True(t, counted)
		assert.Equal(t, 2, attempts)
	})
}

func TestLikeStatus(t *testing.T) {
	t.Parallel()

	store := newFakeEngagementStore()
	svc := NewEngagementService(&postRepoStub{}, store, nil)

	_, err := svc.ToggleLike(context.Background(), 1, 10)
	require.NoError(t, err)

	state, err := svc.LikeStatus(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, int64(1), state.Likes)

	// Another reader sees the count but not the liked flag.
	other, err := svc.LikeStatus(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.False(t, other.Liked)
	assert.Equal(t, int64(1), other.Likes)
}

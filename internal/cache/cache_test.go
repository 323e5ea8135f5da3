package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestMarkViewed(t *testing.T) {
	t.Parallel()

	t.Run("first view claims, repeat does not", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		assert.True(t, MarkViewed(context.Background(), rdb, 10, "viewer-abc"))
		assert.False(t, MarkViewed(context.Background(), rdb, 10, "viewer-abc"))

		// Other viewers and other posts are independent claims.
		assert.True(t, MarkViewed(context.Background(), rdb, 10, "viewer-def"))
		assert.True(t, MarkViewed(context.Background(), rdb, 11, "viewer-abc"))
	})

	t.Run("clearing the marker re-arms the viewer", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		require.True(t, MarkViewed(context.Background(), rdb, 10, "viewer-abc"))
		ClearViewed(context.Background(), rdb, 10, "viewer-abc")
		assert.True(t, MarkViewed(context.Background(), rdb, 10, "viewer-abc"))
	})

	t.Run("fails open without redis", func(t *testing.T) {
		t.Parallel()
		assert.True(t, MarkViewed(context.Background(), nil, 10, "viewer-abc"))
	})
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		SetJSON(context.Background(), rdb, "k", payload{Name: "nairobi", Count: 3}, time.Minute)

		var got payload
		require.True(t, GetJSON(context.Background(), rdb, "k", &got))
		assert.Equal(t, payload{Name: "nairobi", Count: 3}, got)
	})

	t.Run("miss returns false", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		var got payload
		assert.False(t, GetJSON(context.Background(), rdb, "absent", &got))
	})

	t.Run("corrupt entry is dropped", func(t *testing.T) {
		t.Parallel()
		mr, rdb := testClient(t)
		require.NoError(t, mr.Set("k", "{not json"))

		var got payload
		assert.False(t, GetJSON(context.Background(), rdb, "k", &got))
		assert.False(t, mr.Exists("k"))
	})
}

func TestAside(t *testing.T) {
	t.Parallel()

	t.Run("loads once then serves from cache", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		loads := 0
		load := func() (string, error) {
			loads++
			return "fresh", nil
		}

		got, err := Aside(context.Background(), rdb, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "fresh", got)

		got, err = Aside(context.Background(), rdb, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "fresh", got)
		assert.Equal(t, 1, loads)
	})

	t.Run("load errors pass through uncached", func(t *testing.T) {
		t.Parallel()
		_, rdb := testClient(t)

		boom := errors.New("source down")
		_, err := Aside(context.Background(), rdb, "k", time.Minute, func() (string, error) {
			return "", boom
		})
		assert.ErrorIs(t, err, boom)

		// Next call retries the source instead of serving the failure.
		got, err := Aside(context.Background(), rdb, "k", time.Minute, func() (string, error) {
			return "recovered", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "recovered", got)
	})
}

func TestInvalidatePost(t *testing.T) {
	t.Parallel()
	mr, rdb := testClient(t)

	SetJSON(context.Background(), rdb, PostKey(10), "cached", time.Minute)
	SetJSON(context.Background(), rdb, PostSlugKey("a-slug"), "cached", time.Minute)

	InvalidatePost(context.Background(), rdb, 10, "a-slug")

	assert.False(t, mr.Exists(PostKey(10)))
	assert.False(t, mr.Exists(PostSlugKey("a-slug")))
}

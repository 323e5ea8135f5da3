package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/middleware"
	"sanaalens/internal/models"
)

const commentChannelPrefix = "comments:post:"

// ThreadUpdate is the payload pushed to watchers after any comment
// mutation: the full thread snapshot, newest first, plus the count.
// Sending the snapshot rather than a delta keeps every client's view
// consistent regardless of which updates it missed while reconnecting.
type ThreadUpdate struct {
	PostID   uint             `json:"post_id"`
	Count    int64            `json:"count"`
	Comments []models.Comment `json:"comments"`
}

// Notifier publishes thread updates through Redis and relays subscribed
// updates into the local hub.
type Notifier struct {
	rdb *redis.Client
	hub *Hub
}

// NewNotifier creates a notifier bound to the given hub.
func NewNotifier(rdb *redis.Client, hub *Hub) *Notifier {
	return &Notifier{rdb: rdb, hub: hub}
}

// Publish sends a thread update to all instances. With Redis down the
// update still reaches this instance's own watchers.
func (n *Notifier) Publish(ctx context.Context, update ThreadUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "thread update marshal failed", "post_id", update.PostID, "error", err)
		return
	}

	if n.rdb != nil {
		channel := fmt.Sprintf("%s%d", commentChannelPrefix, update.PostID)
		if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
			middleware.Logger.WarnContext(ctx, "thread update publish failed, local delivery only", "post_id", update.PostID, "error", err)
			n.hub.Broadcast(update.PostID, payload)
		}
		return
	}

	n.hub.Broadcast(update.PostID, payload)
}

// PublishThread wraps Publish behind the narrow interface the comment
// service depends on.
func (n *Notifier) PublishThread(ctx context.Context, postID uint, count int64, comments []models.Comment) {
	n.Publish(ctx, ThreadUpdate{PostID: postID, Count: count, Comments: comments})
}

// Run subscribes to all comment channels and relays updates to the local
// hub until ctx is cancelled. Safe to skip entirely when Redis is absent.
func (n *Notifier) Run(ctx context.Context) {
	if n.rdb == nil {
		return
	}

	sub := n.rdb.PSubscribe(ctx, commentChannelPrefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			postID, err := postIDFromChannel(msg.Channel)
			if err != nil {
				middleware.Logger.Warn("ignoring malformed comment channel", "channel", msg.Channel)
				continue
			}
			n.hub.Broadcast(postID, []byte(msg.Payload))
		}
	}
}

func postIDFromChannel(channel string) (uint, error) {
	raw := strings.TrimPrefix(channel, commentChannelPrefix)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

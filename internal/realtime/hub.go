// Package realtime pushes comment thread updates to connected readers.
//
// Each open post page holds one websocket subscribed to that post's
// thread. Mutations publish through Redis so every API instance fans the
// update out to its own local connections.
package realtime

import (
	"strconv"
	"sync"

	"sanaalens/internal/middleware"
	"sanaalens/internal/observability"
)

// Hub tracks websocket clients grouped by the post they watch.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*Client]struct{}),
	}
}

// Register adds a client to the set watching its post.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.PostID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.PostID] = set
	}
	set[c] = struct{}{}

	observability.CommentStreamWatchers.WithLabelValues(postLabel(c.PostID)).Inc()
	observability.CommentStreamConnectionsTotal.Inc()
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.PostID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.PostID)
	}

	observability.CommentStreamWatchers.WithLabelValues(postLabel(c.PostID)).Dec()
	observability.CommentStreamConnectionsTotal.Dec()
}

// Broadcast delivers a payload to every client watching the post. Slow
// clients are dropped rather than allowed to block the hub.
func (h *Hub) Broadcast(postID uint, payload []byte) {
	observability.ThreadBroadcastsTotal.Inc()

	h.mu.RLock()
	var stalled []*Client
	for c := range h.clients[postID] {
		if !c.TrySend(payload) {
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		middleware.Logger.Warn("dropping stalled comment stream client", "post_id", postID)
		observability.StreamBackpressureDrops.Inc()
		h.Unregister(c)
	}
}

// WatcherCount reports how many clients watch a post. Used by tests and
// the health endpoint.
func (h *Hub) WatcherCount(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[postID])
}

func postLabel(postID uint) string {
	return strconv.FormatUint(uint64(postID), 10)
}

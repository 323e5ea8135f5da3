package server

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/websocket/v2"

	"sanaalens/internal/realtime"
)

// CommentStream holds a websocket open for one post's comment thread.
// The current snapshot is sent immediately on connect, then every
// mutation pushes a fresh one.
func (s *Server) CommentStream(conn *websocket.Conn) {
	raw := conn.Params("id")
	postID64, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || postID64 == 0 {
		conn.Close()
		return
	}
	postID := uint(postID64)

	client := realtime.NewClient(postID, conn)
	s.hub.Register(client)

	// Initial snapshot so the page renders without a separate fetch.
	if comments, count, err := s.comments.ListByPost(context.Background(), postID); err == nil {
		update := realtime.ThreadUpdate{PostID: postID, Count: count, Comments: comments}
		if payload, err := json.Marshal(update); err == nil {
			client.TrySend(payload)
		}
	}

	go client.WritePump()
	client.ReadPump(s.hub)
}

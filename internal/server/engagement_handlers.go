package server

import (
	"github.com/gofiber/fiber/v2"
)

// RecordView counts a post view, once per viewer. Anonymous and
// fire-and-forget from the client's perspective: the response is 204
// whether or not the view was new.
func (s *Server) RecordView(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := s.engagement.RecordView(c.UserContext(), postID, viewerKey(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike flips the reader's like on a post and returns the
// authoritative new state.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	state, err := s.engagement.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// GetLikeStatus reports the reader's like state without changing it.
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	state, err := s.engagement.LikeStatus(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// ToggleBookmark flips the reader's bookmark on a post.
func (s *Server) ToggleBookmark(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	state, err := s.engagement.ToggleBookmark(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// GetMyBookmarks returns the reader's saved posts, most recent first.
func (s *Server) GetMyBookmarks(c *fiber.Ctx) error {
	posts, err := s.engagement.BookmarkedPosts(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

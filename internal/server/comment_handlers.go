package server

import (
	"github.com/gofiber/fiber/v2"

	"sanaalens/internal/models"
)

type commentRequest struct {
	Content string `json:"content"`
}

// GetComments returns a post's comment thread, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comments, count, err := s.comments.ListByPost(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments, "count": count})
}

// CreateComment posts a new comment on a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.comments.Create(c.UserContext(), currentUserID(c), postID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits the reader's own comment within the edit window.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.comments.Update(c.UserContext(), currentUserID(c), commentID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes the reader's own comment within the edit window.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.comments.Delete(c.UserContext(), currentUserID(c), commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

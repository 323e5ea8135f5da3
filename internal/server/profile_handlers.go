package server

import (
	"github.com/gofiber/fiber/v2"

	"sanaalens/internal/models"
	"sanaalens/internal/service"
)

// GetMyProfile returns the signed-in reader's profile.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile replaces the editable profile fields as a unit.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var update service.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profiles.ReplaceProfile(c.UserContext(), currentUserID(c), update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangeMyPassword rotates the reader's password after verifying the
// current one.
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.profiles.ChangePassword(c.UserContext(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMyAccount removes the reader's account.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.profiles.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

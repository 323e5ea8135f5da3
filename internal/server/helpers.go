package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sanaalens/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// parsePagination reads limit and offset query params, clamping both to
// sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// currentUserID returns the authenticated reader ID set by the auth
// middleware. Only valid behind AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// viewerKey identifies a browser for view deduplication: the client's
// persistent key header when present, the remote IP otherwise.
func viewerKey(c *fiber.Ctx) string {
	if key := c.Get("X-Viewer-Key"); key != "" {
		return key
	}
	return "ip:" + c.IP()
}

// respondError maps service error codes onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

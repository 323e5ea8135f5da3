package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired enforces a valid bearer token and stores the reader ID in
// c.Locals("userID"). Unauthenticated engagement attempts are stopped
// here, before any service code runs.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := readerIDFromRequest(c, secret)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// OptionalAuth resolves the reader ID when a valid token is present but
// lets anonymous requests through. Used on public reads that enrich
// responses with per-reader state (liked, bookmarked).
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := readerIDFromRequest(c, secret); ok {
			c.Locals("userID", userID)
		}
		return c.Next()
	}
}

// readerIDFromRequest parses the Authorization header (or, for websocket
// upgrades, the token query parameter) and returns the subject reader ID.
func readerIDFromRequest(c *fiber.Ctx, secret string) (uint, bool) {
	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}

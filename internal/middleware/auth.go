package middleware

import (
	"errors"

	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

var errNoSessionUser = errors.New("no authenticated user in session")

// RequireAuth ensures a user is in the session. Returns 401 with the
// standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentUserID extracts the authenticated user's id from the session map.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil, errNoSessionUser
	}
	idStr, _ := m["user_id"].(string)
	if idStr == "" {
		return uuid.Nil, errNoSessionUser
	}
	return uuid.Parse(idStr)
}

package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-tracker/modules/auth"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware creates a middleware that validates JWT tokens. A missing or
// malformed Authorization header is a 401, a token that fails validation is
// a 403.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access denied. No token provided.",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
				Message: "Access denied. No token provided.",
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(MessageResponse{
				Message: "Invalid token.",
			})
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}

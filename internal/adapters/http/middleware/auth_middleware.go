package middleware

import (
	"strings"

	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/jwt"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by Protected
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// Protected validates the bearer token and stores the claims in locals
func Protected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "missing bearer token")
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwt.ValidateSessionToken(token, secret)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// AdminOnly requires the ADMIN role; must run after Protected
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role != string(domain.RoleAdmin) {
			return response.Forbidden(c, "admin role required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID from locals
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

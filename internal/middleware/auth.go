package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/service/auth"
)

const (
	UserContextKey        = "user"
	UserIDContextKey      = "user_id"
	PermissionsContextKey = "permissions"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUser(c.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			return Unauthorized("Account not found or deactivated")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)
		c.Locals(PermissionsContextKey, claims.Permissions)

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetCurrentPermissions(c *fiber.Ctx) domain.EffectivePermissions {
	perms, ok := c.Locals(PermissionsContextKey).(domain.EffectivePermissions)
	if !ok {
		return domain.EffectivePermissions{}
	}
	return perms
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole guards a route behind one of the caller's effective roles. The
// role set comes from the token claims, the union of the account's primary
// and extra roles.
func RequireRole(requiredRole string) fiber.Handler {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		perms := GetCurrentPermissions(c)
		if len(perms.Roles) == 0 {
			return Unauthorized("User not found")
		}

		for _, required := range roles {
			for _, held := range perms.Roles {
				if held == required {
					return c.Next()
				}
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

// RequireAccessLevel guards a route behind a minimum effective access level.
func RequireAccessLevel(min int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		perms := GetCurrentPermissions(c)
		if len(perms.Roles) == 0 {
			return Unauthorized("User not found")
		}
		if perms.AccessLevel < min {
			return Forbidden("Insufficient permissions for this operation")
		}
		return c.Next()
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that rejects callers whose token role
// does not match. It is a pure check on the claims snapshot; the user
// record is not re-read.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role information missing", nil)
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

package cheatLogValidator

import (
	"cbt/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Create validates a violation report.
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TestID uint   `json:"testId"`
			Type   string `json:"type"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.TestID == 0 {
			errors["testId"] = "Test id is required!"
		}
		if strings.TrimSpace(reqData.Type) == "" {
			errors["type"] = "Violation type is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

package resultValidator

import (
	"cbt/middleware"

	"github.com/gofiber/fiber/v2"
)

// Update validates a result correction payload. Score bounds against
// the stored total are checked in the controller.
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score   *int              `json:"score"`
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score == nil && reqData.Answers == nil {
			errors["score"] = "Score or answers are required!"
		}
		if reqData.Score != nil && *reqData.Score < 0 {
			errors["score"] = "Score must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
